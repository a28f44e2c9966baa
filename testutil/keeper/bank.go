package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// TestBankKeeper is a minimal bank keeper for keeper tests. Balances and
// supply live in a KVStore of the test multistore, so transfers made
// inside a cache context roll back with it exactly like the real bank.
type TestBankKeeper struct {
	storeKey storetypes.StoreKey
}

func NewTestBankKeeper(key storetypes.StoreKey) *TestBankKeeper {
	return &TestBankKeeper{storeKey: key}
}

// ModuleAddress derives the account a module mints into and burns from.
func ModuleAddress(moduleName string) sdk.AccAddress {
	return address.Module(moduleName)
}

func (b *TestBankKeeper) store(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(b.storeKey)
}

func balanceKey(addr sdk.AccAddress, denom string) []byte {
	return []byte(fmt.Sprintf("b/%s/%s", addr, denom))
}

func supplyKey(denom string) []byte {
	return []byte("s/" + denom)
}

func (b *TestBankKeeper) getAmount(ctx context.Context, key []byte) math.Int {
	bz := b.store(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(fmt.Sprintf("test bank: corrupt amount at %q: %v", key, err))
	}
	return amount
}

func (b *TestBankKeeper) setAmount(ctx context.Context, key []byte, amount math.Int) {
	if amount.IsZero() {
		b.store(ctx).Delete(key)
		return
	}
	bz, err := amount.Marshal()
	if err != nil {
		panic(fmt.Sprintf("test bank: marshal amount: %v", err))
	}
	b.store(ctx).Set(key, bz)
}

// GetBalance returns the balance of a single denom.
func (b *TestBankKeeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, b.getAmount(ctx, balanceKey(addr, denom)))
}

// GetSupply returns the total issuance of a denom. Only coins created
// through MintCoins count; FundAccount seeds balances without supply.
func (b *TestBankKeeper) GetSupply(ctx context.Context, denom string) sdk.Coin {
	return sdk.NewCoin(denom, b.getAmount(ctx, supplyKey(denom)))
}

// SpendableCoins returns every positive balance of the account. The test
// bank has no locks or vesting, so everything is spendable.
func (b *TestBankKeeper) SpendableCoins(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	coins := sdk.NewCoins()
	store := b.store(ctx)
	prefix := []byte(fmt.Sprintf("b/%s/", addr))
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		denom := string(iterator.Key()[len(prefix):])
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(fmt.Sprintf("test bank: corrupt amount: %v", err))
		}
		coins = coins.Add(sdk.NewCoin(denom, amount))
	}
	return coins
}

// SendCoins moves coins between accounts, failing on insufficient funds.
func (b *TestBankKeeper) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	for _, coin := range amt {
		fromKey := balanceKey(fromAddr, coin.Denom)
		balance := b.getAmount(ctx, fromKey)
		if balance.LT(coin.Amount) {
			return fmt.Errorf("insufficient funds: %s has %s%s, need %s", fromAddr, balance, coin.Denom, coin)
		}
		b.setAmount(ctx, fromKey, balance.Sub(coin.Amount))
		toKey := balanceKey(toAddr, coin.Denom)
		b.setAmount(ctx, toKey, b.getAmount(ctx, toKey).Add(coin.Amount))
	}
	return nil
}

// SendCoinsFromAccountToModule moves coins into a module account.
func (b *TestBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return b.SendCoins(ctx, senderAddr, ModuleAddress(recipientModule), amt)
}

// SendCoinsFromModuleToAccount moves coins out of a module account.
func (b *TestBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return b.SendCoins(ctx, ModuleAddress(senderModule), recipientAddr, amt)
}

// MintCoins creates coins in the module account and grows supply.
func (b *TestBankKeeper) MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	moduleAddr := ModuleAddress(moduleName)
	for _, coin := range amt {
		key := balanceKey(moduleAddr, coin.Denom)
		b.setAmount(ctx, key, b.getAmount(ctx, key).Add(coin.Amount))
		sKey := supplyKey(coin.Denom)
		b.setAmount(ctx, sKey, b.getAmount(ctx, sKey).Add(coin.Amount))
	}
	return nil
}

// BurnCoins destroys coins held by the module account and shrinks supply.
func (b *TestBankKeeper) BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	moduleAddr := ModuleAddress(moduleName)
	for _, coin := range amt {
		key := balanceKey(moduleAddr, coin.Denom)
		balance := b.getAmount(ctx, key)
		if balance.LT(coin.Amount) {
			return fmt.Errorf("insufficient module funds to burn %s", coin)
		}
		b.setAmount(ctx, key, balance.Sub(coin.Amount))
		sKey := supplyKey(coin.Denom)
		supply := b.getAmount(ctx, sKey)
		if supply.LT(coin.Amount) {
			return fmt.Errorf("burn %s exceeds supply %s", coin, supply)
		}
		b.setAmount(ctx, sKey, supply.Sub(coin.Amount))
	}
	return nil
}

// FundAccount seeds an account balance directly, bypassing supply.
func (b *TestBankKeeper) FundAccount(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) {
	for _, coin := range amt {
		key := balanceKey(addr, coin.Denom)
		b.setAmount(ctx, key, b.getAmount(ctx, key).Add(coin.Amount))
	}
}
