package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Joint is one of the 32 skeletal landmarks reported by the body tracker.
type Joint int

// Joint identifiers in tracker order.
const (
	Pelvis Joint = iota
	SpineNavel
	SpineChest
	Neck
	ClavicleLeft
	ShoulderLeft
	ElbowLeft
	WristLeft
	HandLeft
	HandTipLeft
	ThumbLeft
	ClavicleRight
	ShoulderRight
	ElbowRight
	WristRight
	HandRight
	HandTipRight
	ThumbRight
	HipLeft
	KneeLeft
	AnkleLeft
	FootLeft
	HipRight
	KneeRight
	AnkleRight
	FootRight
	Head
	Nose
	EyeLeft
	EarLeft
	EyeRight
	EarRight

	// JointCount is the number of defined joints.
	JointCount int = iota
)

var jointNames = [JointCount]string{
	"PELVIS", "SPINE_NAVEL", "SPINE_CHEST", "NECK",
	"CLAVICLE_LEFT", "SHOULDER_LEFT", "ELBOW_LEFT", "WRIST_LEFT", "HAND_LEFT", "HANDTIP_LEFT", "THUMB_LEFT",
	"CLAVICLE_RIGHT", "SHOULDER_RIGHT", "ELBOW_RIGHT", "WRIST_RIGHT", "HAND_RIGHT", "HANDTIP_RIGHT", "THUMB_RIGHT",
	"HIP_LEFT", "KNEE_LEFT", "ANKLE_LEFT", "FOOT_LEFT",
	"HIP_RIGHT", "KNEE_RIGHT", "ANKLE_RIGHT", "FOOT_RIGHT",
	"HEAD", "NOSE", "EYE_LEFT", "EAR_LEFT", "EYE_RIGHT", "EAR_RIGHT",
}

// Valid reports whether j is a defined joint.
func (j Joint) Valid() bool {
	return j >= 0 && int(j) < JointCount
}

func (j Joint) String() string {
	if !j.Valid() {
		return fmt.Sprintf("JOINT(%d)", int(j))
	}
	return jointNames[j]
}

// ParseJoint resolves a numeric id or a canonical name such as "ANKLE_LEFT".
func ParseJoint(s string) (Joint, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		j := Joint(id)
		if !j.Valid() {
			return 0, fmt.Errorf("joint id %d out of range [0, %d)", id, JointCount)
		}
		return j, nil
	}
	upper := strings.ToUpper(s)
	for i, name := range jointNames {
		if name == upper {
			return Joint(i), nil
		}
	}
	return 0, fmt.Errorf("unknown joint %q", s)
}

// Side is the body side of a bilateral joint or event.
type Side int

// Sides.
const (
	Left Side = iota
	Right
)

// Sides lists both sides in report order.
var Sides = []Side{Left, Right}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "left" or "right".
func (s *Side) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "left":
		*s = Left
	case "right":
		*s = Right
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Ankle returns the ankle joint for the side.
func (s Side) Ankle() Joint {
	if s == Left {
		return AnkleLeft
	}
	return AnkleRight
}

// Wrist returns the wrist joint for the side.
func (s Side) Wrist() Joint {
	if s == Left {
		return WristLeft
	}
	return WristRight
}

// Shoulder returns the shoulder joint for the side.
func (s Side) Shoulder() Joint {
	if s == Left {
		return ShoulderLeft
	}
	return ShoulderRight
}
