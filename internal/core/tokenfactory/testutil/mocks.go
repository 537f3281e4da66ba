// Package testutil 提供代币工厂测试用的假实现
package testutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/weisyn/tokenfactory/internal/core/infrastructure/crypto/address"
	tfinterfaces "github.com/weisyn/tokenfactory/pkg/interfaces/tokenfactory"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// ==================== 地址 ====================

var addressService = address.NewAddressService(address.WESP2PKHVersion)

// Address 由名字确定性地生成合法地址，测试中用 Address("A") 表示主体 A
func Address(name string) string {
	sum := sha256.Sum256([]byte(name))
	addr, err := addressService.BytesToAddress(sum[:address.AddressHashLength])
	if err != nil {
		panic(err)
	}
	return addr
}

// AddressValidator 返回测试使用的地址校验器
func AddressValidator() tfinterfaces.AddressValidator {
	return addressService
}

// ==================== 权威索引 ====================

// ErrIndexUnavailable 模拟传输错误
var ErrIndexUnavailable = errors.New("index unavailable")

// FakeIndex 内存版权威索引，行为与宿主代币工厂一致：
// 空 creator 或空 subdenom 被拒绝，未创建的面额查询失败。
type FakeIndex struct {
	mu sync.Mutex

	prefix   string
	denoms   map[string]*types.Metadata // 完整面额 → 元数据
	admins   map[string]string
	creators map[string][]string
	params   types.Params

	// Err 非空时所有调用返回该错误
	Err error

	fullDenomCalls int
}

var _ tfinterfaces.TokenQuerier = (*FakeIndex)(nil)

// NewFakeIndex 创建假索引，fee 为宿主参数中的创建费用
func NewFakeIndex(fee types.Coins) *FakeIndex {
	return &FakeIndex{
		prefix:   "factory",
		denoms:   make(map[string]*types.Metadata),
		admins:   make(map[string]string),
		creators: make(map[string][]string),
		params:   types.Params{DenomCreationFee: fee},
	}
}

// Register 直接在宿主侧登记面额（模拟宿主已执行创建意图）
func (f *FakeIndex) Register(creator, subdenom string, metadata *types.Metadata) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registerLocked(creator, subdenom, metadata)
}

func (f *FakeIndex) registerLocked(creator, subdenom string, metadata *types.Metadata) string {
	full := fmt.Sprintf("%s/%s/%s", f.prefix, creator, subdenom)
	if _, ok := f.denoms[full]; !ok {
		f.creators[creator] = append(f.creators[creator], full)
	}
	f.denoms[full] = metadata
	f.admins[full] = creator
	return full
}

// Apply 模拟宿主执行意图：CreateDenom 登记面额，ChangeAdmin 更新管理员，其余忽略
func (f *FakeIndex) Apply(contract string, msgs []types.TokenFactoryMsg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, msg := range msgs {
		switch {
		case msg.CreateDenom != nil:
			f.registerLocked(contract, msg.CreateDenom.Subdenom, msg.CreateDenom.Metadata)
		case msg.ChangeAdmin != nil:
			f.admins[msg.ChangeAdmin.Denom] = msg.ChangeAdmin.NewAdminAddress
		}
	}
}

// FullDenomCalls 返回 FullDenom 被调用的次数
func (f *FakeIndex) FullDenomCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fullDenomCalls
}

// FullDenom 实现 TokenQuerier
func (f *FakeIndex) FullDenom(ctx context.Context, creator, subdenom string) (*types.FullDenomResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fullDenomCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	if creator == "" {
		return nil, errors.New("invalid creator address")
	}
	if subdenom == "" {
		return nil, errors.New("invalid subdenom")
	}
	full := fmt.Sprintf("%s/%s/%s", f.prefix, creator, subdenom)
	if _, ok := f.denoms[full]; !ok {
		return nil, fmt.Errorf("denom does not exist: %s", full)
	}
	return &types.FullDenomResponse{Denom: full}, nil
}

// DenomsByCreator 实现 TokenQuerier
func (f *FakeIndex) DenomsByCreator(ctx context.Context, creator string) (*types.DenomsByCreatorResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	denoms := append([]string{}, f.creators[creator]...)
	sort.Strings(denoms)
	return &types.DenomsByCreatorResponse{Denoms: denoms}, nil
}

// Metadata 实现 TokenQuerier
func (f *FakeIndex) Metadata(ctx context.Context, denom string) (*types.MetadataResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	metadata, ok := f.denoms[denom]
	if !ok {
		return nil, fmt.Errorf("denom does not exist: %s", denom)
	}
	return &types.MetadataResponse{Metadata: metadata}, nil
}

// Admin 实现 TokenQuerier
func (f *FakeIndex) Admin(ctx context.Context, denom string) (*types.AdminResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	admin, ok := f.admins[denom]
	if !ok {
		return nil, fmt.Errorf("denom does not exist: %s", denom)
	}
	return &types.AdminResponse{Admin: admin}, nil
}

// Params 实现 TokenQuerier
func (f *FakeIndex) Params(ctx context.Context) (*types.ParamsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return &types.ParamsResponse{Params: f.params}, nil
}
