/*
Package session keeps one Turing machine per conversation.

A machine is not safe for concurrent use, so every access goes through Manager.Do,
which serializes callers per session with a reference-counted in-process lock and,
when configured, a distributed lock shared by all replicas.
*/
package session
