package valueobjects

import "fmt"

type NotificationType string

// Planning
const (
	NotificationTypeEventCreated         NotificationType = "EVENT_CREATED"
	NotificationTypeEventPublished       NotificationType = "EVENT_PUBLISHED"
	NotificationTypeEventUpdated         NotificationType = "EVENT_UPDATED"
	NotificationTypeEventCancelled       NotificationType = "EVENT_CANCELLED"
	NotificationTypeEventPostponed       NotificationType = "EVENT_POSTPONED"
	NotificationTypeEventReminder24h     NotificationType = "EVENT_REMINDER_24H"
	NotificationTypeEventReminder1h      NotificationType = "EVENT_REMINDER_1H"
	NotificationTypeEventStartingSoon    NotificationType = "EVENT_STARTING_SOON"
	NotificationTypeEventEnded           NotificationType = "EVENT_ENDED"
	NotificationTypeEventDraftIncomplete NotificationType = "EVENT_DRAFT_INCOMPLETE"
	NotificationTypeEventLocationChanged NotificationType = "EVENT_LOCATION_CHANGED"
	NotificationTypeEventScheduleChanged NotificationType = "EVENT_SCHEDULE_CHANGED"
)

// Booking
const (
	NotificationTypeNewBooking            NotificationType = "NEW_BOOKING"
	NotificationTypeBookingConfirmed      NotificationType = "BOOKING_CONFIRMED"
	NotificationTypeBookingCancelled      NotificationType = "BOOKING_CANCELLED"
	NotificationTypeBookingRefunded       NotificationType = "BOOKING_REFUNDED"
	NotificationTypeBookingPendingPayment NotificationType = "BOOKING_PENDING_PAYMENT"
	NotificationTypePaymentReceived       NotificationType = "PAYMENT_RECEIVED"
	NotificationTypePaymentFailed         NotificationType = "PAYMENT_FAILED"
	NotificationTypeTicketIssued          NotificationType = "TICKET_ISSUED"
	NotificationTypeTicketTransferred     NotificationType = "TICKET_TRANSFERRED"
	NotificationTypeTicketsSoldOut        NotificationType = "TICKETS_SOLD_OUT"
	NotificationTypeTicketsLowStock       NotificationType = "TICKETS_LOW_STOCK"
	NotificationTypeWaitlistSpotAvailable NotificationType = "WAITLIST_SPOT_AVAILABLE"
	NotificationTypeCheckInConfirmed      NotificationType = "CHECK_IN_CONFIRMED"
)

// Social
const (
	NotificationTypeNewFollower        NotificationType = "NEW_FOLLOWER"
	NotificationTypeNewComment         NotificationType = "NEW_COMMENT"
	NotificationTypeCommentReply       NotificationType = "COMMENT_REPLY"
	NotificationTypeNewReview          NotificationType = "NEW_REVIEW"
	NotificationTypeReviewResponse     NotificationType = "REVIEW_RESPONSE"
	NotificationTypeEventShared        NotificationType = "EVENT_SHARED"
	NotificationTypeEventLiked         NotificationType = "EVENT_LIKED"
	NotificationTypeFriendAttending    NotificationType = "FRIEND_ATTENDING"
	NotificationTypeMention            NotificationType = "MENTION"
	NotificationTypeInvitationReceived NotificationType = "INVITATION_RECEIVED"
	NotificationTypeInvitationAccepted NotificationType = "INVITATION_ACCEPTED"
)

// Performance
const (
	NotificationTypeEventViewsMilestone NotificationType = "EVENT_VIEWS_MILESTONE"
	NotificationTypeBookingsMilestone   NotificationType = "BOOKINGS_MILESTONE"
	NotificationTypeRevenueMilestone    NotificationType = "REVENUE_MILESTONE"
	NotificationTypeWeeklyReport        NotificationType = "WEEKLY_REPORT"
	NotificationTypeMonthlyReport       NotificationType = "MONTHLY_REPORT"
	NotificationTypeTrendingEvent       NotificationType = "TRENDING_EVENT"
	NotificationTypeRatingUpdated       NotificationType = "RATING_UPDATED"
	NotificationTypeAttendanceReport    NotificationType = "ATTENDANCE_REPORT"
)

// System
const (
	NotificationTypeWelcome             NotificationType = "WELCOME"
	NotificationTypeAccountVerified     NotificationType = "ACCOUNT_VERIFIED"
	NotificationTypePasswordChanged     NotificationType = "PASSWORD_CHANGED"
	NotificationTypeProfileUpdated      NotificationType = "PROFILE_UPDATED"
	NotificationTypeNewLogin            NotificationType = "NEW_LOGIN"
	NotificationTypeSystemMaintenance   NotificationType = "SYSTEM_MAINTENANCE"
	NotificationTypeTermsUpdated        NotificationType = "TERMS_UPDATED"
	NotificationTypeFeatureAnnouncement NotificationType = "FEATURE_ANNOUNCEMENT"
	NotificationTypeAccountDeactivated  NotificationType = "ACCOUNT_DEACTIVATED"
)

// Commercial
const (
	NotificationTypePromotion            NotificationType = "PROMOTION"
	NotificationTypeDiscountCode         NotificationType = "DISCOUNT_CODE"
	NotificationTypeNewsletter           NotificationType = "NEWSLETTER"
	NotificationTypePartnerOffer         NotificationType = "PARTNER_OFFER"
	NotificationTypeEarlyBirdOffer       NotificationType = "EARLY_BIRD_OFFER"
	NotificationTypeSubscriptionExpiring NotificationType = "SUBSCRIPTION_EXPIRING"
)

// Personalized
const (
	NotificationTypeRecommendedEvent       NotificationType = "RECOMMENDED_EVENT"
	NotificationTypeNearbyEvent            NotificationType = "NEARBY_EVENT"
	NotificationTypeFavoriteOrganizerEvent NotificationType = "FAVORITE_ORGANIZER_EVENT"
	NotificationTypeCategoryInterestEvent  NotificationType = "CATEGORY_INTEREST_EVENT"
	NotificationTypeSavedEventReminder     NotificationType = "SAVED_EVENT_REMINDER"
	NotificationTypeBirthdayGreeting       NotificationType = "BIRTHDAY_GREETING"
)

// Urgent
const (
	NotificationTypeSecurityAlert              NotificationType = "SECURITY_ALERT"
	NotificationTypeSuspiciousActivity         NotificationType = "SUSPICIOUS_ACTIVITY"
	NotificationTypeEventEmergencyCancellation NotificationType = "EVENT_EMERGENCY_CANCELLATION"
	NotificationTypeVenueChangeUrgent          NotificationType = "VENUE_CHANGE_URGENT"
	NotificationTypePaymentDispute             NotificationType = "PAYMENT_DISPUTE"
	NotificationTypeAccountSuspended           NotificationType = "ACCOUNT_SUSPENDED"
	NotificationTypeSafetyAlert                NotificationType = "SAFETY_ALERT"
)

// AllNotificationTypes lists every type in display order, grouped by category.
var AllNotificationTypes = []NotificationType{
	NotificationTypeEventCreated, NotificationTypeEventPublished, NotificationTypeEventUpdated,
	NotificationTypeEventCancelled, NotificationTypeEventPostponed, NotificationTypeEventReminder24h,
	NotificationTypeEventReminder1h, NotificationTypeEventStartingSoon, NotificationTypeEventEnded,
	NotificationTypeEventDraftIncomplete, NotificationTypeEventLocationChanged, NotificationTypeEventScheduleChanged,

	NotificationTypeNewBooking, NotificationTypeBookingConfirmed, NotificationTypeBookingCancelled,
	NotificationTypeBookingRefunded, NotificationTypeBookingPendingPayment, NotificationTypePaymentReceived,
	NotificationTypePaymentFailed, NotificationTypeTicketIssued, NotificationTypeTicketTransferred,
	NotificationTypeTicketsSoldOut, NotificationTypeTicketsLowStock, NotificationTypeWaitlistSpotAvailable,
	NotificationTypeCheckInConfirmed,

	NotificationTypeNewFollower, NotificationTypeNewComment, NotificationTypeCommentReply,
	NotificationTypeNewReview, NotificationTypeReviewResponse, NotificationTypeEventShared,
	NotificationTypeEventLiked, NotificationTypeFriendAttending, NotificationTypeMention,
	NotificationTypeInvitationReceived, NotificationTypeInvitationAccepted,

	NotificationTypeEventViewsMilestone, NotificationTypeBookingsMilestone, NotificationTypeRevenueMilestone,
	NotificationTypeWeeklyReport, NotificationTypeMonthlyReport, NotificationTypeTrendingEvent,
	NotificationTypeRatingUpdated, NotificationTypeAttendanceReport,

	NotificationTypeWelcome, NotificationTypeAccountVerified, NotificationTypePasswordChanged,
	NotificationTypeProfileUpdated, NotificationTypeNewLogin, NotificationTypeSystemMaintenance,
	NotificationTypeTermsUpdated, NotificationTypeFeatureAnnouncement, NotificationTypeAccountDeactivated,

	NotificationTypePromotion, NotificationTypeDiscountCode, NotificationTypeNewsletter,
	NotificationTypePartnerOffer, NotificationTypeEarlyBirdOffer, NotificationTypeSubscriptionExpiring,

	NotificationTypeRecommendedEvent, NotificationTypeNearbyEvent, NotificationTypeFavoriteOrganizerEvent,
	NotificationTypeCategoryInterestEvent, NotificationTypeSavedEventReminder, NotificationTypeBirthdayGreeting,

	NotificationTypeSecurityAlert, NotificationTypeSuspiciousActivity, NotificationTypeEventEmergencyCancellation,
	NotificationTypeVenueChangeUrgent, NotificationTypePaymentDispute, NotificationTypeAccountSuspended,
	NotificationTypeSafetyAlert,
}

var validNotificationTypes = func() map[NotificationType]bool {
	m := make(map[NotificationType]bool, len(AllNotificationTypes))
	for _, t := range AllNotificationTypes {
		m[t] = true
	}
	return m
}()

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) IsValid() bool {
	return validNotificationTypes[t]
}

func NewNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", s)
	}
	return t, nil
}
