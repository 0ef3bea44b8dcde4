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


package badger

import "github.com/refindhq/refind/storage"

// Repositories bundles the per-type repositories sharing one backend.
type Repositories struct {
	Found   storage.FoundRepository
	Lost    storage.LostRepository
	Claims  storage.ClaimRepository
	Chat    storage.ChatRepository
	Backend *Backend
}

// Close closes every repository and then the backend.
func (r *Repositories) Close() error {
	r.Found.Close()
	r.Lost.Close()
	r.Claims.Close()
	r.Chat.Close()
	return r.Backend.Close()
}

// NewRepositories creates the four repositories over a shared backend.
// Caller must call Close when done.
func NewRepositories(backend *Backend) (*Repositories, error) {
	foundRepo, err := NewFoundRepository(backend)
	if err != nil {
		return nil, err
	}

	lostRepo, err := NewLostRepository(backend)
	if err != nil {
		foundRepo.Close()
		return nil, err
	}

	claimRepo, err := NewClaimRepository(backend)
	if err != nil {
		lostRepo.Close()
		foundRepo.Close()
		return nil, err
	}

	chatRepo, err := NewChatRepository(backend)
	if err != nil {
		claimRepo.Close()
		lostRepo.Close()
		foundRepo.Close()
		return nil, err
	}

	return &Repositories{
		Found:   foundRepo,
		Lost:    lostRepo,
		Claims:  claimRepo,
		Chat:    chatRepo,
		Backend: backend,
	}, nil
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must call Close when done.
func NewMemoryRepositories() (*Repositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	repos, err := NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return repos, nil
}
