package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/tokenfactory/internal/core/infrastructure/crypto/address"
)

var addressFlags struct {
	pubKey  string
	version int
}

// addressCmd 地址工具，用于准备 contract_address 等配置项
var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "生成与检查 WES 地址",
}

// addressDeriveCmd 由公钥派生地址
var addressDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "由十六进制公钥派生地址",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := addressServiceFor(addressFlags.version)
		if err != nil {
			return err
		}
		addr, err := deriveAddress(service, addressFlags.pubKey)
		if err != nil {
			return err
		}
		pterm.Println(addr)
		return nil
	},
}

// addressInspectCmd 校验地址并输出其中的公钥哈希
var addressInspectCmd = &cobra.Command{
	Use:   "inspect <address>",
	Short: "校验地址并显示公钥哈希",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := addressServiceFor(addressFlags.version)
		if err != nil {
			return err
		}
		rows, err := inspectAddress(service, args[0])
		if err != nil {
			pterm.Error.Println("地址无效")
			return err
		}
		return pterm.DefaultTable.WithHasHeader(true).WithData(rows).Render()
	},
}

func init() {
	addressCmd.PersistentFlags().IntVar(&addressFlags.version, "address-version", 0, "地址版本字节 (默认取配置中的 address_version)")
	addressDeriveCmd.Flags().StringVar(&addressFlags.pubKey, "pubkey", "", "33 字节压缩或 64 字节未压缩公钥的十六进制")
	_ = addressDeriveCmd.MarkFlagRequired("pubkey")

	addressCmd.AddCommand(addressDeriveCmd)
	addressCmd.AddCommand(addressInspectCmd)
}

// addressServiceFor 未指定版本时使用生效配置中的版本字节
func addressServiceFor(version int) (*address.AddressService, error) {
	if version == 0 {
		provider, err := loadProvider()
		if err != nil {
			return nil, err
		}
		return address.NewAddressService(provider.GetTokenFactory().AddressVersion), nil
	}
	if version < 0 || version > 0xFF {
		return nil, fmt.Errorf("地址版本超出范围: %d", version)
	}
	return address.NewAddressService(byte(version)), nil
}

func deriveAddress(service *address.AddressService, pubKeyHex string) (string, error) {
	pub, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(pubKeyHex), "0x"))
	if err != nil {
		return "", fmt.Errorf("解析公钥失败: %w", err)
	}
	addr, err := service.PublicKeyToAddress(pub)
	if err != nil {
		return "", fmt.Errorf("派生地址失败: %w", err)
	}
	return addr, nil
}

// inspectAddress 地址检查表格；按服务版本重新编码不一致的地址视为 P2SH
func inspectAddress(service *address.AddressService, addr string) ([][]string, error) {
	hash, err := service.AddressToBytes(addr)
	if err != nil {
		return nil, err
	}
	reencoded, err := service.BytesToAddress(hash)
	if err != nil {
		return nil, err
	}

	kind := fmt.Sprintf("P2PKH (0x%02X)", service.Version())
	if reencoded != addr {
		kind = fmt.Sprintf("P2SH (0x%02X)", address.WESP2SHVersion)
	}
	return [][]string{
		{"字段", "值"},
		{"address", addr},
		{"type", kind},
		{"hash160", hex.EncodeToString(hash)},
	}, nil
}
