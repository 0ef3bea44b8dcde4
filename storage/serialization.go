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


package storage

import (
	"github.com/refindhq/refind/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalFoundRecord serializes a FoundRecord to bytes.
func MarshalFoundRecord(record *core.FoundRecord) []byte {
	buf := make([]byte, core.FoundRecordMUS.Size(*record))
	core.FoundRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalFoundRecord deserializes a FoundRecord from bytes.
func UnmarshalFoundRecord(data []byte) (*core.FoundRecord, error) {
	record, _, err := core.FoundRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalLostRecord serializes a LostRecord to bytes.
func MarshalLostRecord(record *core.LostRecord) []byte {
	buf := make([]byte, core.LostRecordMUS.Size(*record))
	core.LostRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalLostRecord deserializes a LostRecord from bytes.
func UnmarshalLostRecord(data []byte) (*core.LostRecord, error) {
	record, _, err := core.LostRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalClaimRequest serializes a ClaimRequest to bytes.
func MarshalClaimRequest(claim *core.ClaimRequest) []byte {
	buf := make([]byte, core.ClaimRequestMUS.Size(*claim))
	core.ClaimRequestMUS.Marshal(*claim, buf)
	return buf
}

// UnmarshalClaimRequest deserializes a ClaimRequest from bytes.
func UnmarshalClaimRequest(data []byte) (*core.ClaimRequest, error) {
	claim, _, err := core.ClaimRequestMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// MarshalChatMessage serializes a ChatMessage to bytes.
func MarshalChatMessage(msg *core.ChatMessage) []byte {
	buf := make([]byte, core.ChatMessageMUS.Size(*msg))
	core.ChatMessageMUS.Marshal(*msg, buf)
	return buf
}

// UnmarshalChatMessage deserializes a ChatMessage from bytes.
func UnmarshalChatMessage(data []byte) (*core.ChatMessage, error) {
	msg, _, err := core.ChatMessageMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
