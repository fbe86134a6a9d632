/*
Package observability turns runtime lifecycle hooks into logs and Prometheus metrics.

Both helpers return domain.LifecycleHooks; combine them with LifecycleHooks.Merge and
hand the result to the session.
*/
package observability
