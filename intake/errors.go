// Copyright 2026 Refind Labs
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


package intake

import "errors"

var (
	// ErrSessionNotFound is returned when no session exists for the token.
	ErrSessionNotFound = errors.New("intake session not found")

	// ErrWrongStep is returned when an answer arrives for a step the
	// session is not on.
	ErrWrongStep = errors.New("answer does not match the session's current step")

	// ErrEmptyAnswer is returned when a required answer is blank.
	ErrEmptyAnswer = errors.New("answer must not be empty")

	// ErrNotComplete is returned when confirming a session that has not
	// reached the confirmation step.
	ErrNotComplete = errors.New("intake session not ready to confirm")
)
