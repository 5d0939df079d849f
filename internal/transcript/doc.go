// Package transcript acquires, validates and persists plain-text transcripts
// for platform videos.
//
// The Resolver tries an ordered list of acquisition strategies (uploaded
// captions, automatic captions, speech-to-text) until one produces text that
// passes the Validator. Successful records are written by the Store as
// {videoKey}_transcript.json files, which LoadAll reads back for later
// scoring runs.
package transcript
