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
package cose

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/gocbor/cbor"
)

// Header labels and algorithm identifiers from RFC 9052 and the IANA "COSE
// Algorithms" registry
const (
	HeaderLabelAlg     = 1
	HeaderLabelX5Chain = 33

	AlgorithmES256 = -7
	AlgorithmEdDSA = -8
)

const sigStructureContext = "Signature1"

var (
	ErrInvalidSign1       = errors.New("invalid COSE_Sign1")
	ErrSignatureMismatch  = errors.New("COSE_Sign1 signature check failed")
	ErrInvalidPublicKey   = errors.New("invalid Ed25519 public key")
	ErrPayloadAndDetached = errors.New("payload and detached content cannot both be non-empty")
)

// BuildToBeSigned returns the encoded Sig_structure for a COSE_Sign1 with the
// specified encoded protected headers. External AAD is always empty. Only one
// of payload and detached may be non-empty, and whichever is becomes the signed
// content.
func BuildToBeSigned(encodedProtected []byte, payload []byte, detached []byte) []byte {
	content := payload
	if len(content) == 0 {
		content = detached
	}
	sigStructure := cbor.NewArray(
		sigStructureContext,
		encodedProtected,
		[]byte{},
		content,
	)
	return cbor.Encode(sigStructure)
}

// EncodeHeaders encodes a protected header map. An empty map is encoded as a
// zero-length byte string.
func EncodeHeaders(headers *cbor.Map) []byte {
	if headers == nil || headers.Len() == 0 {
		return []byte{}
	}
	return cbor.Encode(headers)
}

// Sign1 creates a COSE_Sign1 signed with EdDSA. When payload is empty the
// payload field is null and detached is signed instead. Certificates in
// certChain are placed in the unprotected x5chain header, as a single byte
// string for one certificate and as an array otherwise.
func Sign1(
	key ed25519.PrivateKey,
	payload []byte,
	detached []byte,
	certChain [][]byte,
) ([]byte, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid Ed25519 private key length: %d", len(key))
	}
	if len(payload) > 0 && len(detached) > 0 {
		return nil, ErrPayloadAndDetached
	}
	protectedHeaders := cbor.NewMap(HeaderLabelAlg, AlgorithmEdDSA)
	unprotectedHeaders := cbor.NewMap()
	switch len(certChain) {
	case 0:
	case 1:
		unprotectedHeaders.Add(HeaderLabelX5Chain, certChain[0])
	default:
		certArray := cbor.NewArray()
		for _, cert := range certChain {
			certArray.Add(cert)
		}
		unprotectedHeaders.Add(HeaderLabelX5Chain, certArray)
	}
	encodedProtected := EncodeHeaders(protectedHeaders)
	toBeSigned := BuildToBeSigned(encodedProtected, payload, detached)
	signature := ed25519.Sign(key, toBeSigned)

	coseSign1 := cbor.NewArray(encodedProtected, unprotectedHeaders)
	if len(payload) == 0 {
		coseSign1.Add(nil)
	} else {
		coseSign1.Add(payload)
	}
	coseSign1.Add(signature)
	return cbor.Encode(coseSign1), nil
}

// Verify1 checks the EdDSA signature on a COSE_Sign1 and returns its embedded
// payload, which is nil when the content was detached. Detached content is
// rejected when the payload field is a byte string, even an empty one.
func Verify1(pub ed25519.PublicKey, sign1 []byte, detached []byte) ([]byte, error) {
	msg, err := parseSign1(sign1)
	if err != nil {
		return nil, err
	}
	alg, err := msg.algorithm()
	if err != nil {
		return nil, err
	}
	if alg != AlgorithmEdDSA {
		return nil, fmt.Errorf("%w: unsupported algorithm %d", ErrInvalidSign1, alg)
	}
	if msg.embedded && len(detached) > 0 {
		return nil, ErrPayloadAndDetached
	}
	if err := validatePublicKey(pub); err != nil {
		return nil, err
	}
	toBeSigned := BuildToBeSigned(msg.protected, msg.payload, detached)
	if !ed25519.Verify(pub, toBeSigned, msg.signature) {
		return nil, ErrSignatureMismatch
	}
	return msg.payload, nil
}

// Algorithm returns the value of the alg label from the protected headers
func Algorithm(sign1 []byte) (int64, error) {
	msg, err := parseSign1(sign1)
	if err != nil {
		return 0, err
	}
	return msg.algorithm()
}

// Payload returns the embedded payload without checking the signature. It is
// nil when the content was detached.
func Payload(sign1 []byte) ([]byte, error) {
	msg, err := parseSign1(sign1)
	if err != nil {
		return nil, err
	}
	return msg.payload, nil
}

// CertificateChain returns the certificates from the unprotected x5chain header
func CertificateChain(sign1 []byte) ([][]byte, error) {
	msg, err := parseSign1(sign1)
	if err != nil {
		return nil, err
	}
	for key, value := range msg.unprotected.All() {
		label, ok := cbor.Int64(key)
		if !ok {
			return nil, fmt.Errorf("%w: unprotected header label is not a number", ErrInvalidSign1)
		}
		if label != HeaderLabelX5Chain {
			continue
		}
		switch v := value.(type) {
		case *cbor.Bstr:
			return [][]byte{v.Value()}, nil
		case *cbor.Array:
			ret := make([][]byte, 0, v.Len())
			for _, entry := range v.All() {
				cert, ok := entry.(*cbor.Bstr)
				if !ok {
					return nil, fmt.Errorf("%w: x5chain entry is not a bstr", ErrInvalidSign1)
				}
				ret = append(ret, cert.Value())
			}
			return ret, nil
		default:
			return nil, fmt.Errorf("%w: x5chain is not a bstr or array", ErrInvalidSign1)
		}
	}
	return nil, fmt.Errorf("%w: no x5chain in unprotected headers", ErrInvalidSign1)
}

type sign1Message struct {
	protected   []byte
	unprotected *cbor.Map
	payload     []byte
	// embedded is set when the payload field is a bstr rather than null
	embedded    bool
	signature   []byte
}

func parseSign1(data []byte) (*sign1Message, error) {
	item, n, err := cbor.ParseItem(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSign1, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing byte(s)", ErrInvalidSign1, len(data)-n)
	}
	array, ok := item.(*cbor.Array)
	if !ok {
		return nil, fmt.Errorf("%w: not an array", ErrInvalidSign1)
	}
	if array.Len() != 4 {
		return nil, fmt.Errorf("%w: not an array of size 4", ErrInvalidSign1)
	}
	ret := &sign1Message{}
	protected, ok := array.Get(0).(*cbor.Bstr)
	if !ok {
		return nil, fmt.Errorf("%w: protected headers are not a bstr", ErrInvalidSign1)
	}
	ret.protected = protected.Value()
	ret.unprotected, ok = array.Get(1).(*cbor.Map)
	if !ok {
		return nil, fmt.Errorf("%w: unprotected headers are not a map", ErrInvalidSign1)
	}
	switch payload := array.Get(2).(type) {
	case *cbor.Null:
	case *cbor.Bstr:
		ret.payload = payload.Value()
		ret.embedded = true
	default:
		return nil, fmt.Errorf("%w: payload is not null or a bstr", ErrInvalidSign1)
	}
	signature, ok := array.Get(3).(*cbor.Bstr)
	if !ok {
		return nil, fmt.Errorf("%w: signature is not a bstr", ErrInvalidSign1)
	}
	ret.signature = signature.Value()
	return ret, nil
}

func (m *sign1Message) algorithm() (int64, error) {
	if len(m.protected) == 0 {
		return 0, fmt.Errorf("%w: no alg in protected headers", ErrInvalidSign1)
	}
	item, n, err := cbor.ParseItem(m.protected)
	if err != nil {
		return 0, fmt.Errorf("%w: protected headers: %w", ErrInvalidSign1, err)
	}
	headers, ok := item.(*cbor.Map)
	if !ok || n != len(m.protected) {
		return 0, fmt.Errorf("%w: protected headers are not a map", ErrInvalidSign1)
	}
	value, ok := headers.Get(HeaderLabelAlg)
	if !ok {
		return 0, fmt.Errorf("%w: no alg in protected headers", ErrInvalidSign1)
	}
	alg, ok := cbor.Int64(value)
	if !ok {
		return 0, fmt.Errorf("%w: alg is not a number", ErrInvalidSign1)
	}
	return alg, nil
}

func validatePublicKey(pub ed25519.PublicKey) error {
	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: length %d", ErrInvalidPublicKey, len(pub))
	}
	point := &edwards25519.Point{}
	if _, err := point.SetBytes(pub); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	isSmallOrder := (&edwards25519.Point{}).MultByCofactor(point).
		Equal(edwards25519.NewIdentityPoint()) ==
		1
	if isSmallOrder {
		return fmt.Errorf("%w: small order point", ErrInvalidPublicKey)
	}
	return nil
}
