// Package handler contains the HTTP handlers. All dependencies are
// injected through the Handler struct; nothing reaches for globals.
package handler

import (
	"github.com/smartbrain-app/smartbrain-api/config"
	"github.com/smartbrain-app/smartbrain-api/detector"
	"github.com/smartbrain-app/smartbrain-api/quota"
	"github.com/smartbrain-app/smartbrain-api/store"
)

type Handler struct {
	Cfg      *config.Config
	Users    store.UserStore
	Logins   store.LoginHistoryStore
	Ledger   store.UsageLedger
	Policy   *quota.Policy
	Detector detector.Detector
}

func New(cfg *config.Config, users store.UserStore, logins store.LoginHistoryStore, ledger store.UsageLedger, policy *quota.Policy, det detector.Detector) *Handler {
	return &Handler{
		Cfg:      cfg,
		Users:    users,
		Logins:   logins,
		Ledger:   ledger,
		Policy:   policy,
		Detector: det,
	}
}
