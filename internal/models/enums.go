package models

// Platform identifies a social network.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTelegram  Platform = "telegram"
	PlatformLinkedIn  Platform = "linkedin"
)

// ReportPlatforms are the platforms a user report may name.
var ReportPlatforms = []Platform{PlatformTwitter, PlatformInstagram, PlatformFacebook, PlatformLinkedIn}

// NotificationPlatforms are the platforms a takedown notification may target.
var NotificationPlatforms = []Platform{PlatformTwitter, PlatformInstagram, PlatformFacebook, PlatformTelegram, PlatformLinkedIn}

func (p Platform) ValidForReport() bool {
	return containsPlatform(ReportPlatforms, p)
}

func (p Platform) ValidForNotification() bool {
	return containsPlatform(NotificationPlatforms, p)
}

func containsPlatform(list []Platform, p Platform) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportDismissed ReportStatus = "dismissed"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportReviewed, ReportDismissed:
		return true
	}
	return false
}

// AlertLevel is shared by alerts and platform notifications; notifications stop at high.
type AlertLevel string

const (
	LevelLow      AlertLevel = "low"
	LevelMedium   AlertLevel = "medium"
	LevelHigh     AlertLevel = "high"
	LevelCritical AlertLevel = "critical"
)

func (l AlertLevel) ValidForAlert() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}

func (l AlertLevel) ValidForNotification() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// LevelForScore buckets a 0-100 risk score.
func LevelForScore(score int) AlertLevel {
	switch {
	case score >= 85:
		return LevelCritical
	case score >= 65:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

type AlertStatus string

const (
	AlertNew           AlertStatus = "new"
	AlertInvestigating AlertStatus = "investigating"
	AlertResolved      AlertStatus = "resolved"
	AlertFalsePositive AlertStatus = "false_positive"
)

func (s AlertStatus) Valid() bool {
	switch s {
	case AlertNew, AlertInvestigating, AlertResolved, AlertFalsePositive:
		return true
	}
	return false
}

// Open reports whether the alert still needs attention.
func (s AlertStatus) Open() bool {
	return s == AlertNew || s == AlertInvestigating
}

type NotificationStatus string

const (
	NotificationPending  NotificationStatus = "pending"
	NotificationAccepted NotificationStatus = "accepted"
	NotificationFailed   NotificationStatus = "failed"
	NotificationResolved NotificationStatus = "resolved"
)

func (s NotificationStatus) Valid() bool {
	switch s {
	case NotificationPending, NotificationAccepted, NotificationFailed, NotificationResolved:
		return true
	}
	return false
}

// CanTransitionTo lists the moves an operator may make by hand.
func (s NotificationStatus) CanTransitionTo(next NotificationStatus) bool {
	switch s {
	case NotificationAccepted:
		return next == NotificationResolved
	case NotificationFailed:
		return next == NotificationPending
	}
	return false
}
