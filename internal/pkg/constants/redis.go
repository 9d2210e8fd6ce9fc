package constants

// Redis key formats
const (
	// Exchange rates
	KeyFXRate = "fx:rate:%s:%s" // Format: fx:rate:{base}:{quote}

	// Points
	KeyPointsAward = "points:award:%s" // Format: points:award:{payment_id}

	// Rate Limiting
	KeyRateLimitIP = "rate:ip" // Prefix: rate:ip:{path}:{ip}
)
