package engine

import (
	"fmt"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/event"
	"github.com/osse101/IdleYard_Go/internal/ledger"
	"github.com/osse101/IdleYard_Go/internal/quota"
)

// applyRedeemCode grants a promo code's rewards once per account,
// bounded by the redeem quota when the game has one
func (s *service) applyRedeemCode(m *mutation, act Action) error {
	grants, known := m.game.PromoCodes[act.Code]
	if !known {
		return fmt.Errorf("%w: %s", domain.ErrCodeUnknown, act.Code)
	}
	if m.st.HasRedeemed(act.Code) {
		return fmt.Errorf("%w: %s", domain.ErrCodeRedeemed, act.Code)
	}

	if m.game.RedeemQuota != nil {
		if _, err := quota.Consume(&m.st.RedeemQuota, m.game.RedeemQuota, 1, 1, m.now); err != nil {
			return err
		}
	}

	for key, amount := range grants {
		// Grant keys matching a configured currency credit the balance;
		// everything else lands in stock
		if _, isCurrency := m.game.StartingBalances[key]; isCurrency {
			if err := ledger.CreditBalance(m.st, key, amount); err != nil {
				return err
			}
			continue
		}
		if err := ledger.CreditStock(m.st, key, amount); err != nil {
			return err
		}
	}

	m.st.RedeemedCodes = append(m.st.RedeemedCodes, act.Code)
	m.events = append(m.events, event.NewCodeRedeemedEvent(m.accountID, domain.GameID(m.game.ID), act.Code))
	return nil
}
