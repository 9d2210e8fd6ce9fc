package constants

// NSQ topics and channels
const (
	TopicPointsAward         = "points.award"
	TopicSettlementReconcile = "settlement.reconcile"

	ChannelSettlementService = "settlement-service"
)
