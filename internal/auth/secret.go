package auth

import (
	"fmt"

	"github.com/umpire-engine/umpire/pkg/umpire"
)

// InstallSecretMinter points pkg/umpire's player-secret minting at a
// JWTManager, so every PlayerSecret handed to a client is a signed token
// rather than the package's plain development fallback. Call it once at
// startup before any Game is constructed.
func InstallSecretMinter(manager *JWTManager) {
	umpire.SetSecretMinter(func(p umpire.PlayerNum, seed int64) umpire.PlayerSecret {
		subject := fmt.Sprintf("game-seed-%d-player-%d", seed, p)
		token, err := manager.GenerateRefreshToken(subject)
		if err != nil {
			// Minting happens at game-creation time, not per-request; a
			// signing failure here means a misconfigured secret, which
			// should surface loudly rather than hand out an unusable
			// player credential.
			panic(fmt.Sprintf("auth: failed to mint player secret: %v", err))
		}
		return umpire.PlayerSecret(token)
	})
}
