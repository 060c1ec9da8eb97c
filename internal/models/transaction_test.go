package models

import "testing"

func TestOperationTypeLabel(t *testing.T) {
	cases := map[OperationType]string{
		OperationBuy:        "Покупка",
		OperationSell:       "Продажа",
		OperationDeposit:    "Зачисление",
		OperationWithdrawal: "Списание",
		OperationCommission: "Комиссия",
	}
	for op, want := range cases {
		if got := op.Label(); got != want {
			t.Errorf("expected label %q for %s, got %q", want, op, got)
		}
	}
}

func TestOperationTypeRequiresAsset(t *testing.T) {
	if !OperationBuy.RequiresAsset() || !OperationSell.RequiresAsset() {
		t.Error("buy and sell must require an asset")
	}
	for _, op := range []OperationType{OperationDeposit, OperationWithdrawal, OperationCommission} {
		if op.RequiresAsset() {
			t.Errorf("%s must not require an asset", op)
		}
	}
}

func TestComputeDisplayName(t *testing.T) {
	asset := &Asset{Name: "Газпром"}
	account := &Account{Number: "ACC-001"}

	t.Run("all_parts", func(t *testing.T) {
		got := ComputeDisplayName(OperationBuy, asset, account)
		if got != "Покупка Газпром (ACC-001)" {
			t.Errorf("unexpected display name %q", got)
		}
	})

	t.Run("no_asset", func(t *testing.T) {
		got := ComputeDisplayName(OperationDeposit, nil, account)
		if got != "Зачисление (ACC-001)" {
			t.Errorf("unexpected display name %q", got)
		}
	})

	t.Run("no_account", func(t *testing.T) {
		got := ComputeDisplayName(OperationSell, asset, nil)
		if got != "Продажа Газпром" {
			t.Errorf("unexpected display name %q", got)
		}
	})

	t.Run("empty_parts_skipped", func(t *testing.T) {
		got := ComputeDisplayName(OperationCommission, &Asset{}, &Account{})
		if got != "Комиссия" {
			t.Errorf("unexpected display name %q", got)
		}
	})
}
