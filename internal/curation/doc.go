// Package curation drives a topic run: it decomposes the topic into
// sub-topics, searches candidates for each, and lets the Aggregator pick the
// best-scoring video per sub-topic.
//
// The Pipeline owns the run artifacts in paths.output_dir: the session report
// (analiz_sonuclari.json), the best video list (en_iyi_video.txt) and the
// candidate link file (video_linkleri.txt). All three are reset at run start,
// guarded by an inter-process lock, and the session report is checkpointed
// after every winning sub-topic so an interrupted run keeps finished work.
package curation
