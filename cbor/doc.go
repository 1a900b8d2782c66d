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

// Package cbor provides the CBOR encoding/decoding helpers used for transaction
// composition.
//
// It wraps github.com/fxamacker/cbor/v2 with the patterns the ledger types need:
//
//   - StructAsArray: embed to encode struct fields as a CBOR array instead of a map
//   - DecodeStoreCbor: embed to keep the original CBOR bytes for hashing and
//     byte-exact re-encoding
//   - RawMessage: deferred decoding (like json.RawMessage)
//   - EncodeMapRaw / EncodeArrayRaw: assemble containers from already encoded
//     items without touching their bytes
//
// Encode always uses core deterministic map key ordering, so a value encodes to
// the same bytes every time.
package cbor
