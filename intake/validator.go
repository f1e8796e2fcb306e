package intake

import (
	"fmt"
	"strings"

	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
)

// Policy is the acceptance rule applied before any bytes move.
type Policy struct {
	AllowedTypes []string // extensions without the dot
	MaxBytes     int64
}

func PolicyFromConfig(cfg *types.AppConfig) Policy {
	return Policy{
		AllowedTypes: cfg.AllowedTypes,
		MaxBytes:     cfg.MaxFileBytes,
	}
}

// Check returns every reason f is unacceptable. Type and size are
// judged independently so one file can collect both reasons.
func (p Policy) Check(f types.FileMeta) []string {
	var reasons []string
	if !p.typeAllowed(f.Name) {
		reasons = append(reasons, fmt.Sprintf("File type must be one of: %s", strings.Join(p.AllowedTypes, ", ")))
	}
	if p.MaxBytes > 0 && f.Size > p.MaxBytes {
		reasons = append(reasons, fmt.Sprintf("File size must be less than %s", tool.HumanBytes(p.MaxBytes)))
	}
	return reasons
}

func (p Policy) typeAllowed(name string) bool {
	ext := tool.FileExt(name)
	for _, allowed := range p.AllowedTypes {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

// Validate splits a batch into accepted files and rejections, keeping
// the batch order in both lists.
func (p Policy) Validate(batch []types.FileMeta) ([]types.FileMeta, []types.Rejection) {
	var accepted []types.FileMeta
	var rejected []types.Rejection
	for _, f := range batch {
		if reasons := p.Check(f); len(reasons) > 0 {
			rejected = append(rejected, types.Rejection{File: f, Reasons: reasons})
			continue
		}
		accepted = append(accepted, f)
	}
	return accepted, rejected
}
