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

import "sync"

var (
	defaultOnce sync.Once
	defaultLib  *Lib
	defaultErr  error
)

// Default returns the process-wide Lib, bound once over DefaultBackend()
// and the Global registry. The first caller pays for the bind; every later
// call returns the same read-only Lib (or the same bind error).
func Default() (*Lib, error) {
	defaultOnce.Do(func() {
		defaultLib, defaultErr = Bind(DefaultBackend(), Global)
	})
	return defaultLib, defaultErr
}
