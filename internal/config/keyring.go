package config

import "github.com/zalando/go-keyring"

const keyringService = "relish"

// SecretStore stores connection passwords outside the config file.
type SecretStore interface {
	SetPassword(profile, password string) error
	GetPassword(profile string) (string, error)
	DeletePassword(profile string) error
}

// OSKeyring is the production SecretStore backed by the OS keyring.
type OSKeyring struct{}

func (OSKeyring) SetPassword(profile, password string) error {
	return keyring.Set(keyringService, profile, password)
}

func (OSKeyring) GetPassword(profile string) (string, error) {
	return keyring.Get(keyringService, profile)
}

func (OSKeyring) DeletePassword(profile string) error {
	return keyring.Delete(keyringService, profile)
}
