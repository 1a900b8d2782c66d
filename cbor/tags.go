// Copyright 2026 Blink Labs Software
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

package cbor

const (
	// Useful tag numbers
	CborTagCbor = 24
	CborTagSet  = 258
)

// Header bytes for tag 258
var setTagHeader = []byte{0xd9, 0x01, 0x02}

// HasSetTag returns whether the provided data starts with CBOR tag 258
func HasSetTag(data []byte) bool {
	return len(data) > len(setTagHeader) &&
		data[0] == setTagHeader[0] &&
		data[1] == setTagHeader[1] &&
		data[2] == setTagHeader[2]
}

// UnwrapSetTag strips a leading tag 258 from the provided data, if present. Conway-era
// encoders wrap sets (inputs, vkey witnesses, etc.) with this tag
func UnwrapSetTag(data []byte) []byte {
	if HasSetTag(data) {
		return data[len(setTagHeader):]
	}
	return data
}
