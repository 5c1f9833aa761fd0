package tests

import (
	"math/big"
	"strconv"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

var e18unit = big.NewInt(1_000_000_000_000_000_000)

// e18 scales units to the 18-decimals fixed point shared by the equity token
// and the payment currencies.
func e18(units int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(units), e18unit)
}

func hourFromNow() int64 {
	return time.Now().Add(time.Hour).UnixMilli()
}

// permitMessage rebuilds the byte string the token contract verifies inside
/// its permit method: a fixed prefix, the network magic, the token contract
// hash, both parties, the value, the owner's nonce and the deadline.
func permitMessage(magic uint32, token, owner, spender util.Uint160, value *big.Int, nonce, deadline int64) []byte {
	msg := []byte("STET permit v1:")
	msg = append(msg, strconv.FormatUint(uint64(magic), 10)...)
	msg = append(msg, token.BytesBE()...)
	msg = append(msg, owner.BytesBE()...)
	msg = append(msg, spender.BytesBE()...)
	msg = append(msg, '|')
	msg = append(msg, value.Text(10)...)
	msg = append(msg, '|')
	msg = append(msg, strconv.FormatInt(nonce, 10)...)
	msg = append(msg, '|')
	msg = append(msg, strconv.FormatInt(deadline, 10)...)
	return msg
}

// signPermit signs a permit message with the single-signature account behind
// owner and returns the compressed public key with the signature, ready to be
// passed to the permit method.
func signPermit(e *neotest.Executor, token util.Uint160, owner neotest.Signer, spender util.Uint160, value *big.Int, nonce, deadline int64) ([]byte, []byte) {
	priv := owner.(neotest.SingleSigner).Account().PrivateKey()
	magic := uint32(e.Chain.GetConfig().Magic)
	msg := permitMessage(magic, token, owner.ScriptHash(), spender, value, nonce, deadline)
	return priv.PublicKey().Bytes(), priv.Sign(msg)
}
