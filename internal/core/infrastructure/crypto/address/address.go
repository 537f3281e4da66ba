// Package address 提供WES风格地址的生成与校验
//
// 地址格式：Base58Check(版本字节 + Hash160(公钥)) ，校验和为双SHA256前4字节。
package address

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	tfinterfaces "github.com/weisyn/tokenfactory/pkg/interfaces/tokenfactory"
	"golang.org/x/crypto/ripemd160"
)

// WES地址系统配置常量
const (
	// WESP2PKHVersion P2PKH地址版本字节
	WESP2PKHVersion = 0x1C
	// WESP2SHVersion P2SH地址版本字节（多重签名）
	WESP2SHVersion = 0x9C
	// AddressHashLength 地址哈希长度（20字节）
	AddressHashLength = 20
	// CompressedPublicKeyLength 压缩公钥长度（33字节）
	CompressedPublicKeyLength = 33
	// UncompressedPublicKeyLength 未压缩公钥长度（64字节）
	UncompressedPublicKeyLength = 64

	base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

var (
	// ErrInvalidPublicKey 无效的公钥
	ErrInvalidPublicKey = errors.New("invalid public key format")
	// ErrInvalidAddress 无效的地址格式
	ErrInvalidAddress = errors.New("invalid address format")
	// ErrInvalidAddressLength 无效的地址长度
	ErrInvalidAddressLength = errors.New("invalid address length")
	// ErrInvalidVersion 无效的版本字节
	ErrInvalidVersion = errors.New("invalid address version")
	// ErrInvalidChecksum 校验和错误
	ErrInvalidChecksum = errors.New("invalid checksum")
)

// AddressService 地址服务
//
// version 为生成地址时使用的版本字节；校验时同时接受 version 与 P2SH 版本。
type AddressService struct {
	version byte
}

var _ tfinterfaces.AddressValidator = (*AddressService)(nil)

// NewAddressService 创建地址服务，version 为 0 时使用 WESP2PKHVersion
func NewAddressService(version byte) *AddressService {
	if version == 0 {
		version = WESP2PKHVersion
	}
	return &AddressService{version: version}
}

// Version 返回生成地址使用的版本字节
func (s *AddressService) Version() byte {
	return s.version
}

// PublicKeyToAddress 从公钥生成标准地址
//
// 公钥 → SHA256 → RIPEMD160 → 版本字节+校验和 → Base58编码
func (s *AddressService) PublicKeyToAddress(publicKey []byte) (string, error) {
	if len(publicKey) != CompressedPublicKeyLength && len(publicKey) != UncompressedPublicKeyLength {
		return "", fmt.Errorf("%w: expected %d or %d bytes, got %d",
			ErrInvalidPublicKey, CompressedPublicKeyLength, UncompressedPublicKeyLength, len(publicKey))
	}
	return base58CheckEncode(hash160(publicKey), s.version), nil
}

// BytesToAddress 将20字节哈希编码为地址
func (s *AddressService) BytesToAddress(addressBytes []byte) (string, error) {
	if len(addressBytes) != AddressHashLength {
		return "", fmt.Errorf("%w: expected %d bytes, got %d",
			ErrInvalidAddressLength, AddressHashLength, len(addressBytes))
	}
	return base58CheckEncode(addressBytes, s.version), nil
}

// AddressToBytes 解码地址得到20字节哈希
func (s *AddressService) AddressToBytes(address string) ([]byte, error) {
	if err := s.ValidateAddress(address); err != nil {
		return nil, err
	}
	data, _, err := base58CheckDecode(address)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ValidateAddress 校验地址字符集、长度、校验和与版本字节
func (s *AddressService) ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	if !isValidBase58(address) {
		return fmt.Errorf("%w: non-base58 character", ErrInvalidAddress)
	}
	if len(address) < 25 || len(address) > 34 {
		return fmt.Errorf("%w: got %d characters", ErrInvalidAddressLength, len(address))
	}

	data, version, err := base58CheckDecode(address)
	if err != nil {
		return fmt.Errorf("base58check decode failed: %w", err)
	}
	if version != s.version && version != WESP2SHVersion {
		return fmt.Errorf("%w: got 0x%02x", ErrInvalidVersion, version)
	}
	if len(data) != AddressHashLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidAddressLength, len(data))
	}
	return nil
}

// hash160 RIPEMD160(SHA256(data))
func hash160(data []byte) []byte {
	sha256Hash := sha256.Sum256(data)
	hasher := ripemd160.New()
	hasher.Write(sha256Hash[:])
	return hasher.Sum(nil)
}

func base58CheckEncode(data []byte, version byte) string {
	payload := make([]byte, 1+len(data), 1+len(data)+4)
	payload[0] = version
	copy(payload[1:], data)
	payload = append(payload, doubleSHA256(payload)[:4]...)
	return base58.Encode(payload)
}

// base58CheckDecode 返回数据（不含版本字节）和版本字节
func base58CheckDecode(encoded string) ([]byte, byte, error) {
	decoded := base58.Decode(encoded)
	if len(decoded) < 5 {
		return nil, 0, ErrInvalidAddressLength
	}

	payloadLen := len(decoded) - 4
	payload := decoded[:payloadLen]
	checksum := decoded[payloadLen:]

	expected := doubleSHA256(payload)[:4]
	for i := 0; i < 4; i++ {
		if checksum[i] != expected[i] {
			return nil, 0, ErrInvalidChecksum
		}
	}
	return payload[1:], payload[0], nil
}

func doubleSHA256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

func isValidBase58(s string) bool {
	for _, char := range s {
		if !strings.ContainsRune(base58Alphabet, char) {
			return false
		}
	}
	return true
}
