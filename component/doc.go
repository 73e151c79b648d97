// Package component provides the component model the service is built
// from: the Discoverable interface for runtime inspection, the
// LifecycleComponent contract (Initialize, Start with context, Stop with
// timeout), typed port descriptions, the shared Dependencies bundle, and
// a factory Registry that creates instances and tracks exclusive port
// resources.
package component
