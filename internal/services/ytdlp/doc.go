// Package ytdlp wraps the yt-dlp command line for platform search, caption
// retrieval and audio download.
//
// Every invocation waits on the shared pacer first. Provider block responses
// (HTTP 429, bot checks) are tagged with services.ErrBlocked so the transcript
// resolver can abandon a tier early.
package ytdlp
