package dispatcher

import (
	"context"

	"github.com/google/uuid"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/guard"
	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/tokenfactory/pkg/types"
)

// 请求方法名，同时用作 method 属性值
const (
	MethodInstantiate      = "instantiate"
	MethodUpdateConfig     = "update_config"
	MethodCreateDenom      = "create_denom"
	MethodChangeDenomOwner = "change_denom_owner"
	MethodChangeAdmin      = "change_admin"
	MethodMintTokens       = "mint_tokens"
	MethodBurnTokens       = "burn_tokens"
	MethodForceTransfer    = "force_transfer"

	// force_transfer 请求的 method 属性值与请求名不同
	attrForceTransferTokens = "force_transfer_tokens"
)

// Instantiate 创建配置，调用方成为配置所有者
//
// 已初始化的实例再次初始化返回 InvalidRequest。
func (d *Dispatcher) Instantiate(ctx context.Context, info types.MessageInfo, msg types.InstantiateMsg) (*types.Response, error) {
	return d.run(ctx, MethodInstantiate, info, func(ctx context.Context, tx storage.Transaction) (*types.Response, error) {
		exists, err := d.configs.Exists(ctx, tx)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, types.NewInvalidRequestError("already initialized")
		}

		cfg := &types.Configuration{Owner: info.Sender, CreationFee: copyCoins(msg.CreationFee)}
		if err := d.configs.Save(ctx, tx, cfg); err != nil {
			return nil, err
		}

		return types.NewResponse().
			AddAttribute("method", MethodInstantiate).
			AddAttribute("owner", info.Sender), nil
	})
}

// Execute 分发变更请求
func (d *Dispatcher) Execute(ctx context.Context, info types.MessageInfo, msg types.ExecuteMsg) (*types.Response, error) {
	method, err := msg.Method()
	if err != nil {
		d.rejected(uuid.NewString(), "unknown", info, err)
		return nil, err
	}

	var handler handlerFunc
	switch {
	case msg.UpdateConfig != nil:
		handler = d.updateConfig(info, msg.UpdateConfig)
	case msg.CreateDenom != nil:
		handler = d.createDenom(info, msg.CreateDenom)
	case msg.ChangeDenomOwner != nil:
		handler = d.changeDenomOwner(info, msg.ChangeDenomOwner)
	case msg.ChangeAdmin != nil:
		handler = d.changeAdmin(info, msg.ChangeAdmin)
	case msg.MintTokens != nil:
		handler = d.mintTokens(info, msg.MintTokens)
	case msg.BurnTokens != nil:
		handler = d.burnTokens(info, msg.BurnTokens)
	case msg.ForceTransfer != nil:
		handler = d.forceTransfer(info, msg.ForceTransfer)
	}
	return d.run(ctx, method, info, handler)
}

func (d *Dispatcher) updateConfig(info types.MessageInfo, m *types.UpdateConfigMsg) handlerFunc {
	return func(ctx context.Context, tx storage.Transaction) (*types.Response, error) {
		cfg, err := d.guard.RequireConfigOwner(ctx, tx, info.Sender)
		if err != nil {
			return nil, err
		}
		if m.ClearCreationFee && m.CreationFee != nil {
			return nil, types.NewInvalidRequestError("creation_fee and clear_creation_fee are mutually exclusive")
		}

		if m.Owner != nil {
			if err := d.guard.RequireAddress(*m.Owner); err != nil {
				return nil, err
			}
			cfg.Owner = *m.Owner
		}
		switch {
		case m.ClearCreationFee:
			cfg.CreationFee = nil
		case m.CreationFee != nil:
			cfg.CreationFee = copyCoins(m.CreationFee)
		}

		if err := d.configs.Save(ctx, tx, cfg); err != nil {
			return nil, err
		}
		return types.NewResponse().
			AddAttribute("method", MethodUpdateConfig).
			AddAttribute("owner", cfg.Owner), nil
	}
}

// createDenom 检查顺序：资金 → subdenom 非空 → 未登记
func (d *Dispatcher) createDenom(info types.MessageInfo, m *types.CreateDenomMsg) handlerFunc {
	return func(ctx context.Context, tx storage.Transaction) (*types.Response, error) {
		cfg, err := d.configs.Load(ctx, tx)
		if err != nil {
			return nil, err
		}
		fee, err := d.guard.CreationFee(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := guard.RequireExactFunds(info.Funds, fee); err != nil {
			return nil, err
		}
		if m.Subdenom == "" {
			return nil, types.NewInvalidSubdenomError(m.Subdenom)
		}

		fullDenom := guard.FullDenom(d.guard.DenomPrefix(), d.env.ContractAddress, m.Subdenom)
		// 含 / 的 subdenom 拼出的面额无法再拆回三段，登记后任何操作都无法引用它
		if _, _, err := guard.SplitDenom(d.guard.DenomPrefix(), fullDenom); err != nil {
			return nil, types.NewInvalidSubdenomError(m.Subdenom)
		}
		// 已登记的面额不能通过再次创建改变所有者
		if _, found, err := d.registry.Get(ctx, tx, fullDenom); err != nil {
			return nil, err
		} else if found {
			return nil, types.NewDenomAlreadyExistsError(fullDenom)
		}
		if err := d.registry.Put(ctx, tx, fullDenom, info.Sender); err != nil {
			return nil, err
		}

		return types.NewResponse().
			AddMessage(types.NewCreateDenomIntent(m.Subdenom, m.Metadata)).
			AddAttribute("method", MethodCreateDenom).
			AddAttribute("denom", fullDenom), nil
	}
}

// changeDenomOwner 只改本地登记，不产生意图
func (d *Dispatcher) changeDenomOwner(info types.MessageInfo, m *types.ChangeDenomOwnerMsg) handlerFunc {
	return func(ctx context.Context, tx storage.Transaction) (*types.Response, error) {
		if err := d.guard.RequireAddress(m.NewAdminAddress); err != nil {
			return nil, err
		}
		if err := d.guard.RequireDenomOwner(ctx, tx, m.Denom, info.Sender); err != nil {
			return nil, err
		}
		if err := d.guard.ValidateDenom(ctx, m.Denom); err != nil {
			return nil, err
		}
		if err := d.registry.Put(ctx, tx, m.Denom, m.NewAdminAddress); err != nil {
			return nil, err
		}

		return types.NewResponse().
			AddAttribute("method", MethodChangeDenomOwner).
			AddAttribute("new_owner", m.NewAdminAddress), nil
	}
}

func (d *Dispatcher) changeAdmin(info types.MessageInfo, m *types.ChangeAdminMsg) handlerFunc {
	return func(ctx context.Context, tx storage.Transaction) (*types.Response, error) {
		if err := d.guard.RequireAddress(m.NewAdminAddress); err != nil {
			return nil, err
		}
		if err := d.guard.RequireDenomOwner(ctx, tx, m.Denom, info.Sender); err != nil {
			return nil, err
		}
		if err := d.guard.ValidateDenom(ctx, m.Denom); err != nil {
			return nil, err
		}

		return types.NewResponse().
			AddMessage(types.NewChangeAdminIntent(m.Denom, m.NewAdminAddress)).
			AddAttribute("method", MethodChangeAdmin).
			AddAttribute("denom", m.Denom).
			AddAttribute("new_admin", m.NewAdminAddress), nil
	}
}

// mintTokens 检查顺序：数量 → 所有者 → 接收地址 → 权威索引
func (d *Dispatcher) mintTokens(info types.MessageInfo, m *types.MintTokensMsg) handlerFunc {
	return func(ctx context.Context, tx storage.Transaction) (*types.Response, error) {
		if err := guard.RequireNonZero(m.Amount); err != nil {
			return nil, err
		}
		if err := d.guard.RequireDenomOwner(ctx, tx, m.Denom, info.Sender); err != nil {
			return nil, err
		}
		if err := d.guard.RequireAddress(m.MintToAddress); err != nil {
			return nil, err
		}
		if err := d.guard.ValidateDenom(ctx, m.Denom); err != nil {
			return nil, err
		}

		return types.NewResponse().
			AddMessage(types.NewMintIntent(m.Denom, m.Amount, m.MintToAddress)).
			AddAttribute("method", MethodMintTokens).
			AddAttribute("denom", m.Denom).
			AddAttribute("amount", m.Amount.String()).
			AddAttribute("mint_to_address", m.MintToAddress), nil
	}
}

func (d *Dispatcher) burnTokens(info types.MessageInfo, m *types.BurnTokensMsg) handlerFunc {
	return func(ctx context.Context, tx storage.Transaction) (*types.Response, error) {
		if err := guard.RequireNonZero(m.Amount); err != nil {
			return nil, err
		}
		if err := d.guard.RequireDenomOwner(ctx, tx, m.Denom, info.Sender); err != nil {
			return nil, err
		}
		if err := d.guard.ValidateDenom(ctx, m.Denom); err != nil {
			return nil, err
		}

		return types.NewResponse().
			AddMessage(types.NewBurnIntent(m.Denom, m.Amount, m.BurnFromAddress)).
			AddAttribute("method", MethodBurnTokens).
			AddAttribute("denom", m.Denom).
			AddAttribute("amount", m.Amount.String()).
			AddAttribute("burn_from_address", m.BurnFromAddress), nil
	}
}

func (d *Dispatcher) forceTransfer(info types.MessageInfo, m *types.ForceTransferMsg) handlerFunc {
	return func(ctx context.Context, tx storage.Transaction) (*types.Response, error) {
		if err := guard.RequireNonZero(m.Amount); err != nil {
			return nil, err
		}
		if err := d.guard.RequireDenomOwner(ctx, tx, m.Denom, info.Sender); err != nil {
			return nil, err
		}
		if err := d.guard.ValidateDenom(ctx, m.Denom); err != nil {
			return nil, err
		}

		return types.NewResponse().
			AddMessage(types.NewForceTransferIntent(m.Denom, m.Amount, m.FromAddress, m.ToAddress)).
			AddAttribute("method", attrForceTransferTokens).
			AddAttribute("denom", m.Denom).
			AddAttribute("amount", m.Amount.String()).
			AddAttribute("from_address", m.FromAddress).
			AddAttribute("to_address", m.ToAddress), nil
	}
}

func copyCoins(c *types.Coins) *types.Coins {
	if c == nil {
		return nil
	}
	out := make(types.Coins, len(*c))
	copy(out, *c)
	return &out
}
