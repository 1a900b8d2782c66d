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
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/blinklabs-io/txcompose/cbor"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	AddressHeaderTypeMask    = 0xF0
	AddressHeaderNetworkMask = 0x0F
	AddressHashSize          = 28

	AddressNetworkTestnet = 0
	AddressNetworkMainnet = 1

	AddressTypeKeyKey        = 0b0000
	AddressTypeScriptKey     = 0b0001
	AddressTypeKeyScript     = 0b0010
	AddressTypeScriptScript  = 0b0011
	AddressTypeKeyPointer    = 0b0100
	AddressTypeScriptPointer = 0b0101
	AddressTypeKeyNone       = 0b0110
	AddressTypeScriptNone    = 0b0111
	AddressTypeByron         = 0b1000
	AddressTypeNoneKey       = 0b1110
	AddressTypeNoneScript    = 0b1111

	ByronAddressTypePubkey = 0
	ByronAddressTypeScript = 1
	ByronAddressTypeRedeem = 2

	byronAddressAttrNetwork = 2
)

// Address is a decoded Cardano address. The original bytes are kept so that an
// address always re-encodes exactly as it was received
type Address struct {
	addressType      uint8
	networkId        uint8
	paymentHash      *Blake2b224
	stakingHash      *Blake2b224
	byronAddressType uint64
	byronTestnet     bool
	raw              []byte
}

// NewAddress returns an Address based on the provided bech32/base58 address string
// It detects if the string has mixed case assumes it is a base58 encoded address
// otherwise, it assumes it is bech32 encoded
func NewAddress(addr string) (Address, error) {
	var decoded []byte
	if addr == "" {
		return Address{}, newValidationError("address", addr, errors.New("empty address"))
	}
	if strings.ToLower(addr) != addr {
		// Mixed case detected: Assume Base58 encoding (e.g., Byron addresses)
		decoded = base58.Decode(addr)
		if len(decoded) == 0 {
			return Address{}, newValidationError("address", addr, errors.New("invalid base58 data"))
		}
	} else {
		_, data, err := bech32.DecodeNoLimit(addr)
		if err != nil {
			return Address{}, newValidationError("address", addr, err)
		}
		decoded, err = bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return Address{}, newValidationError("address", addr, err)
		}
	}
	a := Address{}
	if err := a.populateFromBytes(decoded); err != nil {
		return Address{}, newValidationError("address", addr, err)
	}
	return a, nil
}

// NewAddressFromBytes returns an Address based on the raw bytes provided
func NewAddressFromBytes(addrBytes []byte) (Address, error) {
	var ret Address
	if err := ret.populateFromBytes(addrBytes); err != nil {
		return Address{}, newValidationError("address", fmt.Sprintf("%x", addrBytes), err)
	}
	return ret, nil
}

// NewAddressFromParts returns an Address based on the individual parts of the address that are provided
func NewAddressFromParts(
	addrType uint8,
	networkId uint8,
	paymentAddr []byte,
	stakingAddr []byte,
) (Address, error) {
	// Validate network ID
	if networkId != AddressNetworkTestnet &&
		networkId != AddressNetworkMainnet {
		return Address{}, newValidationError("address", "", errors.New("invalid network ID"))
	}
	// Build address bytes
	buf := bytes.NewBuffer(nil)
	header := (addrType << 4) | (networkId & AddressHeaderNetworkMask)
	if err := buf.WriteByte(header); err != nil {
		return Address{}, err
	}
	if _, err := buf.Write(paymentAddr); err != nil {
		return Address{}, err
	}
	if _, err := buf.Write(stakingAddr); err != nil {
		return Address{}, err
	}
	return NewAddressFromBytes(buf.Bytes())
}

type byronAddress struct {
	cbor.StructAsArray
	Payload  cbor.Tag
	Checksum uint32
}

type byronAddressPayload struct {
	cbor.StructAsArray
	Hash     []byte
	Attr     cbor.RawMessage
	AddrType uint64
}

func (a *Address) populateFromBytes(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty address data")
	}
	// Extract header info
	header := data[0]
	a.addressType = (header & AddressHeaderTypeMask) >> 4
	a.networkId = header & AddressHeaderNetworkMask
	a.raw = make([]byte, len(data))
	copy(a.raw, data)
	// Byron Addresses
	if a.addressType == AddressTypeByron {
		var rawAddr byronAddress
		if _, err := cbor.Decode(data, &rawAddr); err != nil {
			return err
		}
		payloadBytes, ok := rawAddr.Payload.Content.([]byte)
		if !ok || rawAddr.Payload.Number != cbor.CborTagCbor {
			return errors.New(
				"invalid Byron address data: unexpected payload content",
			)
		}
		if rawAddr.Checksum != crc32.ChecksumIEEE(payloadBytes) {
			return errors.New(
				"invalid Byron address data: checksum does not match",
			)
		}
		var byronAddr byronAddressPayload
		if _, err := cbor.Decode(payloadBytes, &byronAddr); err != nil {
			return err
		}
		if len(byronAddr.Hash) != AddressHashSize {
			return errors.New(
				"invalid Byron address data: hash is not expected length",
			)
		}
		a.byronAddressType = byronAddr.AddrType
		// Attribute 2 holds the network magic, which is only present on testnets
		var attrs map[uint64]cbor.RawMessage
		if _, err := cbor.Decode(byronAddr.Attr, &attrs); err != nil {
			return err
		}
		_, a.byronTestnet = attrs[byronAddressAttrNetwork]
		tmpHash := NewBlake2b224(byronAddr.Hash)
		a.paymentHash = &tmpHash
		return nil
	}
	if a.networkId != AddressNetworkTestnet &&
		a.networkId != AddressNetworkMainnet {
		return fmt.Errorf("invalid network ID: %d", a.networkId)
	}
	payload := data[1:]
	// Payment payload
	switch a.addressType {
	case AddressTypeKeyKey, AddressTypeKeyScript, AddressTypeKeyPointer, AddressTypeKeyNone,
		AddressTypeScriptKey, AddressTypeScriptScript, AddressTypeScriptPointer, AddressTypeScriptNone:
		if len(payload) < AddressHashSize {
			return errors.New("invalid payment payload: hash too small")
		}
		tmpHash := NewBlake2b224(payload[0:AddressHashSize])
		a.paymentHash = &tmpHash
		payload = payload[AddressHashSize:]
	case AddressTypeNoneKey, AddressTypeNoneScript:
	default:
		return fmt.Errorf("unknown address type: %d", a.addressType)
	}
	// Staking payload
	switch a.addressType {
	case AddressTypeKeyKey, AddressTypeScriptKey, AddressTypeNoneKey,
		AddressTypeKeyScript, AddressTypeScriptScript, AddressTypeNoneScript:
		if len(payload) < AddressHashSize {
			return errors.New("invalid staking payload: hash too small")
		}
		tmpHash := NewBlake2b224(payload[0:AddressHashSize])
		a.stakingHash = &tmpHash
	case AddressTypeKeyPointer, AddressTypeScriptPointer:
		// The pointer is kept as part of the raw address bytes
		if len(payload) == 0 {
			return errors.New("invalid staking payload: missing pointer")
		}
	}
	return nil
}

func (a *Address) UnmarshalCBOR(data []byte) error {
	tmpData := []byte{}
	if _, err := cbor.Decode(data, &tmpData); err != nil {
		return err
	}
	return a.populateFromBytes(tmpData)
}

func (a Address) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(a.raw)
}

func (a Address) NetworkId() uint8 {
	if a.addressType == AddressTypeByron {
		if a.byronTestnet {
			return AddressNetworkTestnet
		}
		return AddressNetworkMainnet
	}
	return a.networkId
}

func (a Address) Type() uint8 {
	return a.addressType
}

func (a Address) ByronType() uint64 {
	return a.byronAddressType
}

// IsScript returns whether the payment part of the address is a script hash
func (a Address) IsScript() bool {
	switch a.addressType {
	case AddressTypeScriptKey, AddressTypeScriptScript, AddressTypeScriptPointer, AddressTypeScriptNone:
		return true
	case AddressTypeByron:
		return a.byronAddressType == ByronAddressTypeScript
	}
	return false
}

// PaymentHash returns the payment credential hash of the address, which is either a key
// hash or a script hash. The second return value is false for stake addresses
func (a Address) PaymentHash() (Blake2b224, bool) {
	if a.paymentHash == nil {
		return Blake2b224{}, false
	}
	return *a.paymentHash, true
}

// PaymentKeyHash returns the payment key hash of the address. It fails for stake
// addresses and addresses whose payment part is a script
func (a Address) PaymentKeyHash() (AddrKeyHash, error) {
	if a.paymentHash == nil {
		return AddrKeyHash{}, newValidationError(
			"address",
			a.String(),
			errors.New("address has no payment credential"),
		)
	}
	if a.IsScript() {
		return AddrKeyHash{}, newValidationError(
			"address",
			a.String(),
			errors.New("payment credential is a script hash"),
		)
	}
	return *a.paymentHash, nil
}

// StakeKeyHash returns the staking credential hash of the address, if it has one
func (a Address) StakeKeyHash() (Blake2b224, bool) {
	if a.stakingHash == nil {
		return Blake2b224{}, false
	}
	return *a.stakingHash, true
}

// StakeAddress returns a new Address with only the stake key portion. This will return nil if the address has no staking hash
func (a Address) StakeAddress() *Address {
	var addrType uint8
	switch a.addressType {
	case AddressTypeKeyKey, AddressTypeScriptKey, AddressTypeNoneKey:
		addrType = AddressTypeNoneKey
	case AddressTypeKeyScript, AddressTypeScriptScript, AddressTypeNoneScript:
		addrType = AddressTypeNoneScript
	default:
		// Unsupported address type
		return nil
	}
	ret, err := NewAddressFromParts(addrType, a.networkId, nil, a.stakingHash.Bytes())
	if err != nil {
		return nil
	}
	return &ret
}

func (a Address) generateHRP() string {
	var ret string
	if a.addressType == AddressTypeNoneKey ||
		a.addressType == AddressTypeNoneScript {
		ret = "stake"
	} else {
		ret = "addr"
	}
	// Add test_ suffix if not mainnet
	if a.networkId != AddressNetworkMainnet {
		ret += "_test"
	}
	return ret
}

// Bytes returns the underlying bytes for the address
func (a Address) Bytes() []byte {
	ret := make([]byte, len(a.raw))
	copy(ret, a.raw)
	return ret
}

// String returns the bech32-encoded version of the address, or base58 for Byron addresses
func (a Address) String() string {
	if len(a.raw) == 0 {
		return ""
	}
	if a.addressType == AddressTypeByron {
		return base58.Encode(a.raw)
	}
	return bech32Encode(a.generateHRP(), a.raw)
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// Equal returns whether both addresses have identical bytes
func (a Address) Equal(other Address) bool {
	return bytes.Equal(a.raw, other.raw)
}
