package exo

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats captures what a conversion did.
type Stats struct {
	Containers int `json:"containers" yaml:"containers"`
	Exercises  int `json:"exercises" yaml:"exercises"`

	// Bytes of raw blocks in, reconstructed bodies out.
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	ParseDuration       time.Duration `json:"parse_duration_ns" yaml:"parse_duration"`
	HeaderDuration      time.Duration `json:"header_duration_ns" yaml:"header_duration"`
	SegmentDuration     time.Duration `json:"segment_duration_ns" yaml:"segment_duration"`
	ReconstructDuration time.Duration `json:"reconstruct_duration_ns" yaml:"reconstruct_duration"`
	TotalDuration       time.Duration `json:"total_duration_ns" yaml:"total_duration"`
}

// String returns a human-readable summary.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Containers: %d\n", s.Containers))
	sb.WriteString(fmt.Sprintf("Exercises:  %d\n", s.Exercises))
	sb.WriteString(fmt.Sprintf("Size:       %s -> %s\n",
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes))))
	sb.WriteString(fmt.Sprintf("Timing:     parse=%v header=%v segment=%v reconstruct=%v total=%v\n",
		s.ParseDuration.Round(time.Microsecond),
		s.HeaderDuration.Round(time.Microsecond),
		s.SegmentDuration.Round(time.Microsecond),
		s.ReconstructDuration.Round(time.Microsecond),
		s.TotalDuration.Round(time.Microsecond)))

	return sb.String()
}
