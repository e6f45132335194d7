package common

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gofiber/fiber/v2"
)

func GetParams(c *fiber.Ctx, key string) (string, error) {
	value := c.Params(key)
	if value == "" {
		return "", fmt.Errorf("missing parameter: %s", key)
	}
	return value, nil
}

// GetPublicKeyParam reads a base58 public key path parameter.
func GetPublicKeyParam(c *fiber.Ctx, key string) (string, error) {
	value, err := GetParams(c, key)
	if err != nil {
		return "", err
	}
	pk, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %s", key, err.Error())
	}
	return pk.String(), nil
}

func GetWalletParam(c *fiber.Ctx) (string, error) {
	return GetPublicKeyParam(c, "wallet")
}

func GetMintParam(c *fiber.Ctx) (string, error) {
	return GetPublicKeyParam(c, "mint")
}
