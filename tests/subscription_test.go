package tests

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/shengtuo-tech/equity-contract/common"
	"github.com/shengtuo-tech/equity-contract/stet"
	"github.com/shengtuo-tech/equity-contract/subscription"
	"github.com/stretchr/testify/require"
)

// One mock currency serves both payment slots: a contract deployed twice from
// the same sender would get the same hash anyway, and sale mechanics do not
// depend on the two currencies being distinct contracts.
type subscriptionFixture struct {
	stet         *neotest.ContractInvoker
	usd          *neotest.ContractInvoker
	subscription *neotest.ContractInvoker
	owner        neotest.Signer
	stetTreasury neotest.Signer
	treasury     neotest.Signer
	buyer        neotest.Signer
}

func newSubscriptionFixture(t *testing.T, usdDecimals int64, approveStet bool) subscriptionFixture {
	e := newExecutor(t)
	owner := e.NewAccount(t)
	stetTreasury := e.NewAccount(t)
	treasury := e.NewAccount(t)
	buyer := e.NewAccount(t)

	stetCtr := deployStetContract(t, e, stetTreasury.ScriptHash(), owner.ScriptHash())
	usdCtr := deployUSDMockContract(t, e, "USDM", usdDecimals,
		buyer.ScriptHash(), e18(1_000_000))
	subCtr := deploySubscriptionContract(t, e, stetCtr.Hash, stetTreasury.ScriptHash(),
		treasury.ScriptHash(), usdCtr.Hash, usdCtr.Hash, owner.ScriptHash())

	f := subscriptionFixture{
		stet:         e.CommitteeInvoker(stetCtr.Hash),
		usd:          e.CommitteeInvoker(usdCtr.Hash),
		subscription: e.CommitteeInvoker(subCtr.Hash),
		owner:        owner,
		stetTreasury: stetTreasury,
		treasury:     treasury,
		buyer:        buyer,
	}
	if approveStet {
		f.stet.WithSigners(stetTreasury).Invoke(t, stackitem.Null{}, "approve",
			stetTreasury.ScriptHash(), subCtr.Hash, big.NewInt(-1))
	}
	return f
}

func (f subscriptionFixture) approveUSD(t *testing.T, amount *big.Int) {
	f.usd.WithSigners(f.buyer).Invoke(t, stackitem.Null{}, "approve",
		f.buyer.ScriptHash(), f.subscription.Hash, amount)
}

func subscriptionEvent(t *testing.T, aer *state.AppExecResult) *state.NotificationEvent {
	for i := range aer.Events {
		if aer.Events[i].Name == "SubscriptionCreated" {
			return &aer.Events[i]
		}
	}
	t.Fatal("no SubscriptionCreated notification")
	return nil
}

func TestSubscriptionDeploy(t *testing.T) {
	f := newSubscriptionFixture(t, 18, true)
	f.subscription.Invoke(t, f.stet.Hash.BytesBE(), "stetContract")
	f.subscription.Invoke(t, 0, "usdCap18")
	f.subscription.Invoke(t, 0, "totalRaised18")
}

func TestSubscriptionSubscribe(t *testing.T) {
	f := newSubscriptionFixture(t, 18, true)
	cBuyer := f.subscription.WithSigners(f.buyer)
	f.approveUSD(t, e18(140))

	h := cBuyer.Invoke(t, stackitem.Null{}, "subscribeUSDT",
		f.buyer.ScriptHash(), e18(100))
	aer := cBuyer.CheckHalt(t, h)
	ev := subscriptionEvent(t, aer)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(f.buyer.ScriptHash().BytesBE()),
		stackitem.NewByteArray(f.usd.Hash.BytesBE()),
		stackitem.NewBigInteger(e18(100)),
		stackitem.NewBigInteger(e18(1000)),
	}), ev.Item)

	f.usd.Invoke(t, new(big.Int).Sub(e18(1_000_000), e18(100)), "balanceOf", f.buyer.ScriptHash())
	f.usd.Invoke(t, e18(100), "balanceOf", f.treasury.ScriptHash())
	f.stet.Invoke(t, e18(1000), "balanceOf", f.buyer.ScriptHash())
	f.stet.Invoke(t, new(big.Int).Sub(e18(50_000_000), e18(1000)), "balanceOf", f.stetTreasury.ScriptHash())
	f.subscription.Invoke(t, e18(100), "totalRaised18")

	// the USDC entry point shares state and accounting with the USDT one
	cBuyer.Invoke(t, stackitem.Null{}, "subscribeUSDC", f.buyer.ScriptHash(), e18(40))
	f.stet.Invoke(t, e18(1400), "balanceOf", f.buyer.ScriptHash())
	f.usd.Invoke(t, e18(140), "balanceOf", f.treasury.ScriptHash())
	f.subscription.Invoke(t, e18(140), "totalRaised18")
}

func TestSubscriptionWitness(t *testing.T) {
	f := newSubscriptionFixture(t, 18, true)
	f.approveUSD(t, e18(10))
	mallory := f.subscription.NewAccount(t)

	f.subscription.WithSigners(mallory).InvokeFail(t, common.ErrWitnessFailed,
		"subscribeUSDT", f.buyer.ScriptHash(), e18(10))
	f.subscription.WithSigners(f.buyer).InvokeFail(t, "invalid payment amount",
		"subscribeUSDT", f.buyer.ScriptHash(), 0)
}

func TestSubscriptionCap(t *testing.T) {
	f := newSubscriptionFixture(t, 18, true)
	cBuyer := f.subscription.WithSigners(f.buyer)
	cOwner := f.subscription.WithSigners(f.owner)
	f.approveUSD(t, e18(10_000))

	f.subscription.InvokeFail(t, common.ErrOwnerWitnessFailed, "setUsdCap18", e18(1000))

	h := cOwner.Invoke(t, stackitem.Null{}, "setUsdCap18", e18(1000))
	aer := cOwner.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "CapUpdated", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewBigInteger(e18(1000)),
	}), aer.Events[0].Item)
	f.subscription.Invoke(t, e18(1000), "usdCap18")

	// a single purchase over the cap is rejected whole, nothing moves
	cBuyer.InvokeFail(t, subscription.ErrCapReached, "subscribeUSDT",
		f.buyer.ScriptHash(), e18(1500))
	f.subscription.Invoke(t, 0, "totalRaised18")
	f.usd.Invoke(t, e18(1_000_000), "balanceOf", f.buyer.ScriptHash())
	f.stet.Invoke(t, 0, "balanceOf", f.buyer.ScriptHash())

	cBuyer.Invoke(t, stackitem.Null{}, "subscribeUSDT", f.buyer.ScriptHash(), e18(600))
	cBuyer.Invoke(t, stackitem.Null{}, "subscribeUSDC", f.buyer.ScriptHash(), e18(300))
	cBuyer.InvokeFail(t, subscription.ErrCapReached, "subscribeUSDT",
		f.buyer.ScriptHash(), e18(200))
	f.subscription.Invoke(t, e18(900), "totalRaised18")

	// exact fill up to the cap is allowed
	cBuyer.Invoke(t, stackitem.Null{}, "subscribeUSDT", f.buyer.ScriptHash(), e18(100))
	f.subscription.Invoke(t, e18(1000), "totalRaised18")
	cBuyer.InvokeFail(t, subscription.ErrCapReached, "subscribeUSDT",
		f.buyer.ScriptHash(), big.NewInt(1))

	// lifting the cap reopens the sale
	cOwner.Invoke(t, stackitem.Null{}, "setUsdCap18", 0)
	cBuyer.Invoke(t, stackitem.Null{}, "subscribeUSDT", f.buyer.ScriptHash(), e18(500))
	f.subscription.Invoke(t, e18(1500), "totalRaised18")
}

func TestSubscriptionDecimalsMismatch(t *testing.T) {
	f := newSubscriptionFixture(t, 6, true)
	f.approveUSD(t, e18(10))

	f.subscription.WithSigners(f.buyer).InvokeFail(t, subscription.ErrDecimalsMismatch,
		"subscribeUSDT", f.buyer.ScriptHash(), e18(10))
	f.subscription.Invoke(t, 0, "totalRaised18")
}

func TestSubscriptionTokenPolicy(t *testing.T) {
	f := newSubscriptionFixture(t, 18, true)
	cBuyer := f.subscription.WithSigners(f.buyer)
	cStetOwner := f.stet.WithSigners(f.owner)
	f.approveUSD(t, e18(1000))

	cStetOwner.Invoke(t, stackitem.Null{}, "setBlacklist", f.buyer.ScriptHash(), true)
	cBuyer.InvokeFail(t, stet.ErrRecipientBlacklisted, "subscribeUSDT",
		f.buyer.ScriptHash(), e18(10))
	f.subscription.Invoke(t, 0, "totalRaised18")
	cStetOwner.Invoke(t, stackitem.Null{}, "setBlacklist", f.buyer.ScriptHash(), false)

	cStetOwner.Invoke(t, stackitem.Null{}, "setWhitelistEnabled", true)
	cBuyer.InvokeFail(t, stet.ErrSenderNotWhitelisted, "subscribeUSDT",
		f.buyer.ScriptHash(), e18(10))
	cStetOwner.Invoke(t, stackitem.Null{}, "setWhitelist", f.stetTreasury.ScriptHash(), true)
	cBuyer.InvokeFail(t, stet.ErrRecipientNotWhitelisted, "subscribeUSDT",
		f.buyer.ScriptHash(), e18(10))
	cStetOwner.Invoke(t, stackitem.Null{}, "setWhitelist", f.buyer.ScriptHash(), true)
	cBuyer.Invoke(t, stackitem.Null{}, "subscribeUSDT", f.buyer.ScriptHash(), e18(10))
	f.subscription.Invoke(t, e18(10), "totalRaised18")
}

func TestSubscriptionPausePropagates(t *testing.T) {
	f := newSubscriptionFixture(t, 18, true)
	f.approveUSD(t, e18(10))

	f.stet.WithSigners(f.owner).Invoke(t, stackitem.Null{}, "pause")
	f.subscription.WithSigners(f.buyer).InvokeFail(t, stet.ErrPaused,
		"subscribeUSDT", f.buyer.ScriptHash(), e18(10))

	f.stet.WithSigners(f.owner).Invoke(t, stackitem.Null{}, "unpause")
	f.subscription.WithSigners(f.buyer).Invoke(t, stackitem.Null{},
		"subscribeUSDT", f.buyer.ScriptHash(), e18(10))
}

func TestSubscriptionNoAllowance(t *testing.T) {
	f := newSubscriptionFixture(t, 18, true)

	// the buyer never approved the payment pull
	f.subscription.WithSigners(f.buyer).InvokeFail(t, "insufficient allowance",
		"subscribeUSDT", f.buyer.ScriptHash(), e18(10))
	f.subscription.Invoke(t, 0, "totalRaised18")
}

func TestSubscriptionNoTreasuryAllowance(t *testing.T) {
	f := newSubscriptionFixture(t, 18, false)
	f.approveUSD(t, e18(10))

	// the token treasury never approved the sale contract
	f.subscription.WithSigners(f.buyer).InvokeFail(t, stet.ErrInsufficientAllowance,
		"subscribeUSDT", f.buyer.ScriptHash(), e18(10))
	f.subscription.Invoke(t, 0, "totalRaised18")
	f.usd.Invoke(t, e18(1_000_000), "balanceOf", f.buyer.ScriptHash())
}

func TestSubscriptionTransferOwnership(t *testing.T) {
	f := newSubscriptionFixture(t, 18, true)
	newOwner := f.subscription.NewAccount(t)

	f.subscription.WithSigners(newOwner).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"transferOwnership", newOwner.ScriptHash())
	f.subscription.WithSigners(f.owner).Invoke(t, stackitem.Null{},
		"transferOwnership", newOwner.ScriptHash())
	f.subscription.WithSigners(newOwner).Invoke(t, stackitem.Null{},
		"setUsdCap18", e18(1))
}
