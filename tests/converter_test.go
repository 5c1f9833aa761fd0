package tests

import (
	"math/big"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/shengtuo-tech/equity-contract/common"
	"github.com/shengtuo-tech/equity-contract/converter"
	"github.com/shengtuo-tech/equity-contract/stet"
	"github.com/stretchr/testify/require"
)

// docFingerprint extracts the 32-byte sha256 digest from a base58 CIDv0
// string, the form conversion documents are pinned under.
func docFingerprint(t *testing.T, cid string) []byte {
	raw, err := base58.Decode(cid)
	require.NoError(t, err)
	require.Equal(t, 34, len(raw))
	return raw[2:]
}

type converterFixture struct {
	stet      *neotest.ContractInvoker
	converter *neotest.ContractInvoker
	owner     neotest.Signer
	alice     neotest.Signer
}

func newConverterFixture(t *testing.T) converterFixture {
	e := newExecutor(t)
	owner := e.NewAccount(t)
	recipient := e.NewAccount(t)
	alice := e.NewAccount(t)

	stetCtr := deployStetContract(t, e, recipient.ScriptHash(), owner.ScriptHash())
	convCtr := deployConverterContract(t, e, stetCtr.Hash, owner.ScriptHash())

	cStet := e.CommitteeInvoker(stetCtr.Hash)
	cStet.WithSigners(recipient).Invoke(t, true, "transfer",
		recipient.ScriptHash(), alice.ScriptHash(), e18(500), nil)

	return converterFixture{
		stet:      cStet,
		converter: e.CommitteeInvoker(convCtr.Hash),
		owner:     owner,
		alice:     alice,
	}
}

func TestConverterDeploy(t *testing.T) {
	f := newConverterFixture(t)
	f.converter.Invoke(t, f.stet.Hash.BytesBE(), "stetContract")
	f.converter.Invoke(t, 0, "conversionsCount")
}

func TestConverterConvert(t *testing.T) {
	f := newConverterFixture(t)
	doc := docFingerprint(t, "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG")
	amount := e18(150)
	cAlice := f.converter.WithSigners(f.alice)

	// no allowance granted yet, the token refuses the burn
	cAlice.InvokeFail(t, stet.ErrInsufficientAllowance, "convert",
		f.alice.ScriptHash(), amount, doc)

	f.stet.WithSigners(f.alice).Invoke(t, stackitem.Null{}, "approve",
		f.alice.ScriptHash(), f.converter.Hash, amount)

	h := cAlice.Invoke(t, stackitem.Null{}, "convert",
		f.alice.ScriptHash(), amount, doc)
	aer := cAlice.CheckHalt(t, h)
	var converted *state.NotificationEvent
	for i := range aer.Events {
		if aer.Events[i].Name == "Converted" {
			converted = &aer.Events[i]
		}
	}
	require.NotNil(t, converted)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(f.alice.ScriptHash().BytesBE()),
		stackitem.NewBigInteger(amount),
		stackitem.NewByteArray(doc),
	}), converted.Item)

	f.stet.Invoke(t, e18(350), "balanceOf", f.alice.ScriptHash())
	f.stet.Invoke(t, new(big.Int).Sub(e18(50_000_000), amount), "totalSupply")
	f.stet.Invoke(t, 0, "allowance", f.alice.ScriptHash(), f.converter.Hash)
	f.converter.Invoke(t, 1, "conversionsCount")
}

func TestConverterPermitAndConvert(t *testing.T) {
	f := newConverterFixture(t)
	doc := docFingerprint(t, "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG")
	amount := e18(150)
	deadline := hourFromNow()
	cAlice := f.converter.WithSigners(f.alice)

	pub, sig := signPermit(f.stet.Executor, f.stet.Hash, f.alice, f.converter.Hash,
		amount, 0, deadline)

	cAlice.Invoke(t, stackitem.Null{}, "permitAndConvert",
		f.alice.ScriptHash(), amount, doc, deadline, pub, sig)

	f.stet.Invoke(t, e18(350), "balanceOf", f.alice.ScriptHash())
	f.stet.Invoke(t, 0, "allowance", f.alice.ScriptHash(), f.converter.Hash)
	f.stet.Invoke(t, 1, "nonces", f.alice.ScriptHash())
	f.converter.Invoke(t, 1, "conversionsCount")

	// the permit nonce is spent, the same signature cannot convert twice
	cAlice.InvokeFail(t, stet.ErrInvalidSignature, "permitAndConvert",
		f.alice.ScriptHash(), amount, doc, deadline, pub, sig)
	f.converter.Invoke(t, 1, "conversionsCount")
}

func TestConverterBadFingerprint(t *testing.T) {
	f := newConverterFixture(t)
	cAlice := f.converter.WithSigners(f.alice)

	cAlice.InvokeFail(t, converter.ErrDocumentFingerprint, "convert",
		f.alice.ScriptHash(), e18(1), []byte{1, 2, 3})
	cAlice.InvokeFail(t, converter.ErrDocumentFingerprint, "convert",
		f.alice.ScriptHash(), e18(1), make([]byte, 33))
}

func TestConverterWitness(t *testing.T) {
	f := newConverterFixture(t)
	doc := docFingerprint(t, "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG")
	mallory := f.converter.NewAccount(t)

	f.stet.WithSigners(f.alice).Invoke(t, stackitem.Null{}, "approve",
		f.alice.ScriptHash(), f.converter.Hash, e18(10))

	f.converter.WithSigners(mallory).InvokeFail(t, common.ErrWitnessFailed, "convert",
		f.alice.ScriptHash(), e18(10), doc)
}

func TestConverterPausePropagates(t *testing.T) {
	f := newConverterFixture(t)
	doc := docFingerprint(t, "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG")
	cAlice := f.converter.WithSigners(f.alice)

	f.stet.WithSigners(f.alice).Invoke(t, stackitem.Null{}, "approve",
		f.alice.ScriptHash(), f.converter.Hash, e18(10))
	f.stet.WithSigners(f.owner).Invoke(t, stackitem.Null{}, "pause")

	cAlice.InvokeFail(t, stet.ErrPaused, "convert",
		f.alice.ScriptHash(), e18(10), doc)

	f.stet.WithSigners(f.owner).Invoke(t, stackitem.Null{}, "unpause")
	cAlice.Invoke(t, stackitem.Null{}, "convert",
		f.alice.ScriptHash(), e18(10), doc)
}

func TestConverterListConversions(t *testing.T) {
	f := newConverterFixture(t)
	docA := docFingerprint(t, "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG")
	docB := make([]byte, 32)
	docB[0] = 0xff
	cAlice := f.converter.WithSigners(f.alice)

	f.stet.WithSigners(f.alice).Invoke(t, stackitem.Null{}, "approve",
		f.alice.ScriptHash(), f.converter.Hash, e18(30))
	cAlice.Invoke(t, stackitem.Null{}, "convert", f.alice.ScriptHash(), e18(10), docA)
	cAlice.Invoke(t, stackitem.Null{}, "convert", f.alice.ScriptHash(), e18(20), docB)
	f.converter.Invoke(t, 2, "conversionsCount")

	s, err := f.converter.TestInvoke(t, "listConversions")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)
	items := iteratorToArray(iter)
	require.Equal(t, 2, len(items))

	first, ok := items[0].Value().([]stackitem.Item)
	require.True(t, ok)
	require.Equal(t, 4, len(first))
	from, err := first[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, f.alice.ScriptHash().BytesBE(), from)
	require.Equal(t, e18(10), first[1].Value().(*big.Int))
	gotDoc, err := first[2].TryBytes()
	require.NoError(t, err)
	require.Equal(t, docA, gotDoc)

	second, ok := items[1].Value().([]stackitem.Item)
	require.True(t, ok)
	require.Equal(t, e18(20), second[1].Value().(*big.Int))
}

func TestConverterListConversionsOrder(t *testing.T) {
	f := newConverterFixture(t)
	cAlice := f.converter.WithSigners(f.alice)
	const records = 12

	total := new(big.Int)
	for i := int64(1); i <= records; i++ {
		total.Add(total, e18(i))
	}
	f.stet.WithSigners(f.alice).Invoke(t, stackitem.Null{}, "approve",
		f.alice.ScriptHash(), f.converter.Hash, total)

	for i := int64(1); i <= records; i++ {
		doc := make([]byte, 32)
		doc[0] = byte(i)
		cAlice.Invoke(t, stackitem.Null{}, "convert", f.alice.ScriptHash(), e18(i), doc)
	}
	f.converter.Invoke(t, records, "conversionsCount")

	s, err := f.converter.TestInvoke(t, "listConversions")
	require.NoError(t, err)
	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)
	items := iteratorToArray(iter)
	require.Equal(t, records, len(items))

	// traversal yields the records in insertion order, nothing else
	for i := range items {
		rec, ok := items[i].Value().([]stackitem.Item)
		require.True(t, ok)
		require.Equal(t, e18(int64(i+1)), rec[1].Value().(*big.Int))
		doc, err := rec[2].TryBytes()
		require.NoError(t, err)
		require.Equal(t, byte(i+1), doc[0])
	}
}

func TestConverterTransferOwnership(t *testing.T) {
	f := newConverterFixture(t)
	newOwner := f.converter.NewAccount(t)

	f.converter.WithSigners(newOwner).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"transferOwnership", newOwner.ScriptHash())
	f.converter.WithSigners(f.owner).Invoke(t, stackitem.Null{},
		"transferOwnership", newOwner.ScriptHash())
}
