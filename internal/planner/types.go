// Package planner decides, per input video, which outputs still have to be
// produced.
package planner

import "github.com/matthew-beep/assetprep/internal/naming"

// Action describes the per-file processing decision.
type Action int

const (
	ActionProcess Action = iota
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionProcess:
		return "process"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// FilePlan holds the decisions for a single input video. It is produced by
// BuildPlan and consumed by the pipeline and the ffmpeg argument builders.
type FilePlan struct {
	Action     Action
	SkipReason string

	InputPath string
	Outputs   naming.Outputs

	// Which steps run. Both are false when Action is ActionSkip.
	NeedVideo  bool
	NeedPoster bool
}

// Steps returns how many ffmpeg invocations the plan needs.
func (p *FilePlan) Steps() int {
	n := 0
	if p.NeedVideo {
		n++
	}
	if p.NeedPoster {
		n++
	}
	return n
}
