// Package ingest parses skeleton joint logs into frame stores.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/qixiboss/gaitscore/schema"
)

// ErrNoFrames is returned when a log contains no joint samples.
var ErrNoFrames = errors.New("no frames with joint samples found")

// MillimeterThreshold is the mean absolute coordinate above which auto units assume millimeters.
const MillimeterThreshold = 100.0

const maxLineBytes = 1 << 20

var (
	frameRe = regexp.MustCompile(`Frame:\s*(\d+)`)
	jointRe = regexp.MustCompile(`Joint\s+(\d+):\s*([-+]?[\d.]+(?:[eE][-+]?\d+)?),\s*([-+]?[\d.]+(?:[eE][-+]?\d+)?),\s*([-+]?[\d.]+(?:[eE][-+]?\d+)?)`)
)

// Summary describes what a parse consumed.
type Summary struct {
	Frames        int          `json:"frames"`
	JointSamples  int          `json:"joint_samples"`
	SkippedLines  int          `json:"skipped_lines"`
	DetectedUnits schema.Units `json:"detected_units"`
}

// Parse reads a joint log and returns its frame store.
// Units resolve to meters; auto scales by 1/1000 when the mean absolute coordinate exceeds MillimeterThreshold.
func Parse(r io.Reader, units schema.Units) (*schema.FrameStore, Summary, error) {
	var summary Summary
	if units == "" {
		units = schema.AutoUnits
	}
	if _, ok := schema.ValidUnits[units]; !ok {
		return nil, summary, fmt.Errorf("unknown units %q", units)
	}

	data := make(map[int]map[schema.Joint]r3.Vec)
	current, haveFrame := 0, false
	var absSum float64

	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scan.Scan() {
		line := scan.Text()
		if m := frameRe.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				summary.SkippedLines++
				haveFrame = false
				continue
			}
			current, haveFrame = n, true
			continue
		}

		m := jointRe.FindStringSubmatch(line)
		if m == nil || !haveFrame {
			if len(line) > 0 {
				summary.SkippedLines++
			}
			continue
		}
		pos, joint, ok := parseJoint(m)
		if !ok {
			summary.SkippedLines++
			continue
		}

		joints, exists := data[current]
		if !exists {
			joints = make(map[schema.Joint]r3.Vec)
			data[current] = joints
		}
		joints[joint] = pos
		summary.JointSamples++
		absSum += math.Abs(pos.X) + math.Abs(pos.Y) + math.Abs(pos.Z)
	}
	if err := scan.Err(); err != nil {
		return nil, summary, fmt.Errorf("failed to read joint log: %w", err)
	}
	if len(data) == 0 {
		return nil, summary, ErrNoFrames
	}

	summary.DetectedUnits = resolveUnits(units, absSum/float64(3*summary.JointSamples))
	if summary.DetectedUnits == schema.MillimeterUnits {
		for _, joints := range data {
			for j, pos := range joints {
				joints[j] = r3.Scale(1.0/1000, pos)
			}
		}
	}

	store := schema.NewFrameStore(data)
	summary.Frames = store.Len()
	return store, summary, nil
}

// LoadFile opens and parses the joint log at path.
func LoadFile(path string, units schema.Units) (*schema.FrameStore, Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to open joint log: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f, units)
}

// parseJoint converts a joint regex match into a position.
func parseJoint(m []string) (r3.Vec, schema.Joint, bool) {
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return r3.Vec{}, 0, false
	}
	joint := schema.Joint(id)
	if !joint.Valid() {
		return r3.Vec{}, 0, false
	}
	var coords [3]float64
	for i := range coords {
		v, err := strconv.ParseFloat(m[i+2], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return r3.Vec{}, 0, false
		}
		coords[i] = v
	}
	return r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}, joint, true
}

// resolveUnits settles auto units from the mean absolute coordinate.
func resolveUnits(units schema.Units, meanAbs float64) schema.Units {
	if units != schema.AutoUnits {
		return units
	}
	if meanAbs > MillimeterThreshold {
		return schema.MillimeterUnits
	}
	return schema.MetersUnits
}
