// Copyright 2025 go-accelerate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package accel

// Level describes the widest SIMD instruction set detected on the host.
// The pure-Go fallback does not use it for dispatch; it exists for
// diagnostics (bind logging, accelcheck reports) so numeric differences
// between hosts can be attributed.
type Level int

const (
	LevelScalar Level = iota
	LevelSSE2
	LevelAVX2
	LevelAVX512
	LevelNEON
)

func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Set by init() in capability_*.go files.
var (
	currentLevel Level
	currentName  = "scalar"
)

// CurrentLevel returns the detected host SIMD level.
func CurrentLevel() Level { return currentLevel }

// CurrentName returns a human-readable name for the detected host SIMD
// level, e.g. "avx2" or "neon".
func CurrentName() string { return currentName }
