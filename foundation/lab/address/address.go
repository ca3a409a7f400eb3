// Package address walks through the classic Bitcoin P2PKH address
// derivation: secp256k1 keypair, SHA-256, RIPEMD-160, version byte, double
// SHA-256 checksum, Base58Check. Every intermediate value is surfaced so
// the pipeline can be inspected step by step. Only derivation is modeled;
// signing and verification are out of scope.
package address

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/ripemd160"
)

// MainnetVersion is the version byte for a mainnet pay-to-pubkey-hash
// address. Addresses carrying it always render with a leading '1'.
const MainnetVersion = 0x00

// Derivation captures a full address derivation with each intermediate
// hash laid out in pipeline order.
type Derivation struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
	SHA256     string `json:"sha256"`
	RIPEMD160  string `json:"ripemd160"`
	Version    byte   `json:"version"`
	Checksum   string `json:"checksum"`
	Address    string `json:"address"`
}

// Generate creates a fresh secp256k1 keypair and derives its mainnet
// address.
func Generate() (Derivation, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return Derivation{}, fmt.Errorf("generating key: %w", err)
	}

	return Derive(crypto.FromECDSA(privateKey), MainnetVersion)
}

// Derive computes the address for the specified 32 byte private key and
// version byte, capturing every step along the way. The public key is the
// uncompressed 65 byte form, 0x04 followed by the curve point.
func Derive(privateKey []byte, version byte) (Derivation, error) {
	key, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return Derivation{}, fmt.Errorf("parsing private key: %w", err)
	}

	publicKey := crypto.FromECDSAPub(&key.PublicKey)

	shaHash := sha256.Sum256(publicKey)

	ripeHasher := ripemd160.New()
	if _, err := ripeHasher.Write(shaHash[:]); err != nil {
		return Derivation{}, fmt.Errorf("ripemd160: %w", err)
	}
	pubKeyHash := ripeHasher.Sum(nil)

	return Derivation{
		PrivateKey: hex.EncodeToString(privateKey),
		PublicKey:  hex.EncodeToString(publicKey),
		SHA256:     hex.EncodeToString(shaHash[:]),
		RIPEMD160:  hex.EncodeToString(pubKeyHash),
		Version:    version,
		Checksum:   hex.EncodeToString(checksum(version, pubKeyHash)),
		Address:    base58.CheckEncode(pubKeyHash, version),
	}, nil
}

// checksum computes the 4 byte double SHA-256 checksum over the versioned
// public key hash. Base58Check embeds the same value; it is recomputed
// here so the step can be shown on its own.
func checksum(version byte, pubKeyHash []byte) []byte {
	versioned := append([]byte{version}, pubKeyHash...)
	first := sha256.Sum256(versioned)
	second := sha256.Sum256(first[:])

	return second[:4]
}
