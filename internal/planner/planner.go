package planner

import (
	"github.com/matthew-beep/assetprep/internal/config"
	"github.com/matthew-beep/assetprep/internal/fsx"
	"github.com/matthew-beep/assetprep/internal/naming"
)

// SkipReasonUpToDate is the SkipReason when both outputs already exist.
const SkipReasonUpToDate = "Already optimized"

// BuildPlan decides what to do with input given its output locations.
//
//   - --force (SkipExisting off): produce both outputs.
//   - both outputs exist: skip.
//   - otherwise: produce whichever output is missing.
func BuildPlan(cfg *config.Config, input string, out naming.Outputs) *FilePlan {
	return buildPlan(cfg, input, out, fsx.Exists)
}

func buildPlan(cfg *config.Config, input string, out naming.Outputs, exists func(string) bool) *FilePlan {
	plan := &FilePlan{InputPath: input, Outputs: out}

	if !cfg.SkipExisting {
		plan.NeedVideo = true
		plan.NeedPoster = true
		return plan
	}

	plan.NeedVideo = !exists(out.Video)
	plan.NeedPoster = !exists(out.Poster)
	if !plan.NeedVideo && !plan.NeedPoster {
		plan.Action = ActionSkip
		plan.SkipReason = SkipReasonUpToDate
	}
	return plan
}
