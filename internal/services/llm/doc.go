// Package llm provides an OpenAI-compatible chat completion client.
//
// The client backs two pipeline collaborators: the topic decomposer, which asks
// for a list of sub-topics, and the relevance scorer, which asks for a JSON
// score record. Both go through Complete; CompleteJSON and HealthCheck serve
// the config validation command.
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx errors, empty completions and network
// timeouts with exponential backoff (base 1s, max 10s, up to 4 attempts by
// default), honouring Retry-After. Each attempt first waits on the optional
// pacer. Context cancellation aborts retries immediately.
//
// Failures are tagged with services markers: 401/403 map to ErrConfiguration,
// 429 to ErrBlocked, timeouts to ErrTimeout.
package llm
