// Package llm classifies filenames by asking a locally hosted language model
// for a folder name. It supports the native generate endpoint served by
// Ollama-style runtimes and OpenAI-compatible chat endpoints. Every failure is
// resolved to the configured default folder; callers never see an error.
package llm
