// Command curator finds the best learning video for each sub-topic of a topic.
//
// A run decomposes the topic with a language model, searches the video
// platform per sub-topic, acquires transcripts through captions or WhisperX,
// scores them, and writes the winners to the output directory. Inspection
// commands (report, best, transcript, score, deps, config) work on the same
// configuration and artifacts.
package main
