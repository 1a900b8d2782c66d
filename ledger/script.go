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

package ledger

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/blinklabs-io/txcompose/cbor"
)

type PlutusVersion uint8

const (
	PlutusV1 PlutusVersion = 1
	PlutusV2 PlutusVersion = 2
	PlutusV3 PlutusVersion = 3
)

func (v PlutusVersion) String() string {
	return fmt.Sprintf("V%d", uint8(v))
}

// Valid returns whether the version is a known Plutus version
func (v PlutusVersion) Valid() bool {
	return v >= PlutusV1 && v <= PlutusV3
}

// LanguageId returns the language identifier used to key cost models
func (v PlutusVersion) LanguageId() uint {
	return uint(v) - 1
}

// WitnessKey returns the witness set map key holding scripts of this version
func (v PlutusVersion) WitnessKey() uint {
	switch v {
	case PlutusV1:
		return WitnessSetKeyPlutusV1Scripts
	case PlutusV2:
		return WitnessSetKeyPlutusV2Scripts
	default:
		return WitnessSetKeyPlutusV3Scripts
	}
}

// PlutusScript is a compiled Plutus script. Bytes holds the CBOR-wrapped flat program,
// which is the form stored in the witness set
type PlutusScript struct {
	Version PlutusVersion
	Bytes   []byte
}

// NewPlutusScript validates the provided script bytes and returns a PlutusScript
func NewPlutusScript(version PlutusVersion, scriptBytes []byte) (PlutusScript, error) {
	if !version.Valid() {
		return PlutusScript{}, newValidationError(
			"script",
			"",
			fmt.Errorf("unknown Plutus version: %d", version),
		)
	}
	if len(scriptBytes) == 0 {
		return PlutusScript{}, newValidationError("script", "", errors.New("empty script"))
	}
	var inner []byte
	if _, err := cbor.Decode(scriptBytes, &inner); err != nil {
		return PlutusScript{}, newValidationError("script", hex.EncodeToString(scriptBytes), err)
	}
	ret := PlutusScript{
		Version: version,
		Bytes:   make([]byte, len(scriptBytes)),
	}
	copy(ret.Bytes, scriptBytes)
	return ret, nil
}

// Hash returns the script hash, which is the Blake2b-224 hash of the language tag
// followed by the script bytes
func (s PlutusScript) Hash() ScriptHash {
	tmp := make([]byte, 0, len(s.Bytes)+1)
	tmp = append(tmp, byte(s.Version))
	tmp = append(tmp, s.Bytes...)
	return Blake2b224Hash(tmp)
}
