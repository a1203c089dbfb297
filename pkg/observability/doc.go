/*
Package observability provides tools for monitoring Turing machines.

It includes Prometheus metrics fed by machine lifecycle hooks, structured audit
logging of transitions, and a helper to compose several hook sets into one.
*/
package observability
