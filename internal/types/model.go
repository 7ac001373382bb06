package types

import (
	"fmt"
	"strings"
)

// Version is the interpreter version a game was written for. It is
// encoded the same way the interpreter reports it, so 2.936 is 0x2936
// and 3.002.149 is 0x3149.
type Version uint16

const (
	Unset    Version = 0      // Unset - Version hasn't been set - behaves as V2936
	V2089    Version = 0x2089 // V2089 - early AGI v2, quit takes no argument
	V2272    Version = 0x2272 // V2272 - move.obj doesn't step on the first cycle
	V2440    Version = 0x2440
	V2917    Version = 0x2917
	V2936    Version = 0x2936 // V2936 - the most common late v2 release
	V3002149 Version = 0x3149 // V3002149 - last v3 release
)

var VersionNames = map[Version]string{
	V2089:    "2.089",
	V2272:    "2.272",
	V2440:    "2.440",
	V2917:    "2.917",
	V2936:    "2.936",
	V3002149: "3.002.149",
	Unset:    "Unset",
}

// StringToVersion converts a string to a Version.
func StringToVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return Unset, nil
	}
	for v, n := range VersionNames {
		if n == s {
			return v, nil
		}
	}

	return Unset, fmt.Errorf("unknown interpreter version %q", s)
}

func (v Version) String() string {
	if n, ok := VersionNames[v]; ok {
		return n
	}
	return fmt.Sprintf("%x", uint16(v))
}

// Effective returns the version used for behaviour decisions, mapping
// Unset to V2936.
func (v Version) Effective() Version {
	if v == Unset {
		return V2936
	}
	return v
}
