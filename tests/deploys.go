package tests

import (
	"math/big"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

const (
	stetPath         = "../stet"
	converterPath    = "../converter"
	subscriptionPath = "../subscription"
	usdMockPath      = "../usdmock"
)

func compileContract(t *testing.T, e *neotest.Executor, ctrPath string) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, ctrPath, path.Join(ctrPath, "config.yml"))
}

func deployStetContract(t *testing.T, e *neotest.Executor, recipient, owner util.Uint160) *neotest.Contract {
	ctr := compileContract(t, e, stetPath)
	e.DeployContract(t, ctr, []any{recipient, owner})
	return ctr
}

func deployConverterContract(t *testing.T, e *neotest.Executor, stet, owner util.Uint160) *neotest.Contract {
	ctr := compileContract(t, e, converterPath)
	e.DeployContract(t, ctr, []any{stet, owner})
	return ctr
}

func deploySubscriptionContract(t *testing.T, e *neotest.Executor, stet, stetTreasury, treasury, usdt, usdc, owner util.Uint160) *neotest.Contract {
	ctr := compileContract(t, e, subscriptionPath)
	e.DeployContract(t, ctr, []any{stet, stetTreasury, treasury, usdt, usdc, owner})
	return ctr
}

func deployUSDMockContract(t *testing.T, e *neotest.Executor, symbol string, decimals int64, recipient util.Uint160, supply *big.Int) *neotest.Contract {
	ctr := compileContract(t, e, usdMockPath)
	e.DeployContract(t, ctr, []any{symbol, decimals, recipient, supply})
	return ctr
}
