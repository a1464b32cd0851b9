// Package templates holds the notification catalog: for every notification
// type its category, default priority and French title/message patterns.
// Patterns use {{snake_case}} placeholders filled by Render.
package templates

import (
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
)

// Template is one catalog entry.
type Template struct {
	Category vo.Category
	Priority vo.Priority
	Title    string
	Message  string
}

var catalog = map[vo.NotificationType]Template{
	// Planning
	vo.NotificationTypeEventCreated: {
		vo.CategoryPlanning, vo.PriorityLow,
		"Événement créé",
		"Votre événement « {{event_title}} » a bien été créé.",
	},
	vo.NotificationTypeEventPublished: {
		vo.CategoryPlanning, vo.PriorityMedium,
		"Événement publié",
		"« {{event_title}} » est maintenant visible par le public.",
	},
	vo.NotificationTypeEventUpdated: {
		vo.CategoryPlanning, vo.PriorityMedium,
		"Événement modifié",
		"L'événement « {{event_title}} » a été mis à jour. {{changes}}",
	},
	vo.NotificationTypeEventCancelled: {
		vo.CategoryPlanning, vo.PriorityHigh,
		"Événement annulé",
		"L'événement « {{event_title}} » a été annulé. {{reason}}",
	},
	vo.NotificationTypeEventPostponed: {
		vo.CategoryPlanning, vo.PriorityHigh,
		"Événement reporté",
		"L'événement « {{event_title}} » est reporté au {{new_date}}.",
	},
	vo.NotificationTypeEventReminder24h: {
		vo.CategoryPlanning, vo.PriorityMedium,
		"C'est demain !",
		"« {{event_title}} » commence demain à {{event_time}}, {{location}}.",
	},
	vo.NotificationTypeEventReminder1h: {
		vo.CategoryPlanning, vo.PriorityHigh,
		"Dans une heure",
		"« {{event_title}} » commence dans une heure, {{location}}.",
	},
	vo.NotificationTypeEventStartingSoon: {
		vo.CategoryPlanning, vo.PriorityHigh,
		"Ça commence bientôt",
		"« {{event_title}} » démarre dans {{minutes}} minutes.",
	},
	vo.NotificationTypeEventEnded: {
		vo.CategoryPlanning, vo.PriorityLow,
		"Événement terminé",
		"« {{event_title}} » est terminé. Merci pour votre participation !",
	},
	vo.NotificationTypeEventDraftIncomplete: {
		vo.CategoryPlanning, vo.PriorityLow,
		"Brouillon incomplet",
		"Votre brouillon « {{event_title}} » n'est pas encore terminé. Finalisez-le pour le publier.",
	},
	vo.NotificationTypeEventLocationChanged: {
		vo.CategoryPlanning, vo.PriorityHigh,
		"Changement de lieu",
		"« {{event_title}} » aura désormais lieu à {{location}}.",
	},
	vo.NotificationTypeEventScheduleChanged: {
		vo.CategoryPlanning, vo.PriorityHigh,
		"Changement d'horaire",
		"« {{event_title}} » a un nouvel horaire : {{new_date}}.",
	},

	// Booking
	vo.NotificationTypeNewBooking: {
		vo.CategoryBooking, vo.PriorityMedium,
		"Nouvelle réservation",
		"{{participant_name}} a réservé une place pour « {{event_title}} ».",
	},
	vo.NotificationTypeBookingConfirmed: {
		vo.CategoryBooking, vo.PriorityHigh,
		"Réservation confirmée",
		"Votre réservation pour « {{event_title}} » est confirmée. Référence : {{booking_reference}}.",
	},
	vo.NotificationTypeBookingCancelled: {
		vo.CategoryBooking, vo.PriorityMedium,
		"Réservation annulée",
		"La réservation de {{participant_name}} pour « {{event_title}} » a été annulée.",
	},
	vo.NotificationTypeBookingRefunded: {
		vo.CategoryBooking, vo.PriorityMedium,
		"Remboursement effectué",
		"Vous avez été remboursé de {{amount}} FCFA pour « {{event_title}} ».",
	},
	vo.NotificationTypeBookingPendingPayment: {
		vo.CategoryBooking, vo.PriorityMedium,
		"Paiement en attente",
		"Votre réservation pour « {{event_title}} » attend votre paiement de {{amount}} FCFA.",
	},
	vo.NotificationTypePaymentReceived: {
		vo.CategoryBooking, vo.PriorityMedium,
		"Paiement reçu",
		"Paiement de {{amount}} FCFA reçu pour « {{event_title}} ».",
	},
	vo.NotificationTypePaymentFailed: {
		vo.CategoryBooking, vo.PriorityHigh,
		"Échec du paiement",
		"Le paiement de {{amount}} FCFA pour « {{event_title}} » a échoué. {{reason}}",
	},
	vo.NotificationTypeTicketIssued: {
		vo.CategoryBooking, vo.PriorityMedium,
		"Billet disponible",
		"Votre billet pour « {{event_title}} » est prêt.",
	},
	vo.NotificationTypeTicketTransferred: {
		vo.CategoryBooking, vo.PriorityMedium,
		"Billet transféré",
		"{{sender_name}} vous a transféré un billet pour « {{event_title}} ».",
	},
	vo.NotificationTypeTicketsSoldOut: {
		vo.CategoryBooking, vo.PriorityHigh,
		"Complet !",
		"Tous les billets de « {{event_title}} » sont vendus.",
	},
	vo.NotificationTypeTicketsLowStock: {
		vo.CategoryBooking, vo.PriorityMedium,
		"Plus que quelques places",
		"Il ne reste que {{remaining}} places pour « {{event_title}} ».",
	},
	vo.NotificationTypeWaitlistSpotAvailable: {
		vo.CategoryBooking, vo.PriorityHigh,
		"Une place s'est libérée",
		"Une place est disponible pour « {{event_title}} ». Réservez vite !",
	},
	vo.NotificationTypeCheckInConfirmed: {
		vo.CategoryBooking, vo.PriorityLow,
		"Entrée validée",
		"Bienvenue à « {{event_title}} » ! Votre entrée a été enregistrée.",
	},

	// Social
	vo.NotificationTypeNewFollower: {
		vo.CategorySocial, vo.PriorityLow,
		"Nouvel abonné",
		"{{follower_name}} vous suit désormais.",
	},
	vo.NotificationTypeNewComment: {
		vo.CategorySocial, vo.PriorityLow,
		"Nouveau commentaire",
		"{{author_name}} a commenté « {{event_title}} ».",
	},
	vo.NotificationTypeCommentReply: {
		vo.CategorySocial, vo.PriorityLow,
		"Nouvelle réponse",
		"{{author_name}} a répondu à votre commentaire.",
	},
	vo.NotificationTypeNewReview: {
		vo.CategorySocial, vo.PriorityMedium,
		"Nouvel avis",
		"{{reviewer_name}} a laissé un avis de {{rating}}/5 sur « {{event_title}} ».",
	},
	vo.NotificationTypeReviewResponse: {
		vo.CategorySocial, vo.PriorityLow,
		"Réponse à votre avis",
		"L'organisateur de « {{event_title}} » a répondu à votre avis.",
	},
	vo.NotificationTypeEventShared: {
		vo.CategorySocial, vo.PriorityLow,
		"Événement partagé",
		"{{sharer_name}} a partagé « {{event_title}} » avec vous.",
	},
	vo.NotificationTypeEventLiked: {
		vo.CategorySocial, vo.PriorityLow,
		"Nouveau j'aime",
		"{{user_name}} aime « {{event_title}} ».",
	},
	vo.NotificationTypeFriendAttending: {
		vo.CategorySocial, vo.PriorityLow,
		"Un ami y va",
		"{{friend_name}} participe à « {{event_title}} ».",
	},
	vo.NotificationTypeMention: {
		vo.CategorySocial, vo.PriorityMedium,
		"Vous avez été mentionné",
		"{{author_name}} vous a mentionné : {{excerpt}}",
	},
	vo.NotificationTypeInvitationReceived: {
		vo.CategorySocial, vo.PriorityMedium,
		"Invitation reçue",
		"{{inviter_name}} vous invite à « {{event_title}} ».",
	},
	vo.NotificationTypeInvitationAccepted: {
		vo.CategorySocial, vo.PriorityLow,
		"Invitation acceptée",
		"{{invitee_name}} a accepté votre invitation à « {{event_title}} ».",
	},

	// Performance
	vo.NotificationTypeEventViewsMilestone: {
		vo.CategoryPerformance, vo.PriorityLow,
		"Palier de vues atteint",
		"« {{event_title}} » a dépassé {{count}} vues.",
	},
	vo.NotificationTypeBookingsMilestone: {
		vo.CategoryPerformance, vo.PriorityMedium,
		"Palier de réservations atteint",
		"« {{event_title}} » compte maintenant {{count}} réservations.",
	},
	vo.NotificationTypeRevenueMilestone: {
		vo.CategoryPerformance, vo.PriorityMedium,
		"Palier de revenus atteint",
		"« {{event_title}} » a généré {{amount}} FCFA.",
	},
	vo.NotificationTypeWeeklyReport: {
		vo.CategoryPerformance, vo.PriorityLow,
		"Votre rapport hebdomadaire",
		"Cette semaine : {{bookings}} réservations et {{views}} vues.",
	},
	vo.NotificationTypeMonthlyReport: {
		vo.CategoryPerformance, vo.PriorityLow,
		"Votre rapport mensuel",
		"Ce mois-ci : {{bookings}} réservations pour {{amount}} FCFA.",
	},
	vo.NotificationTypeTrendingEvent: {
		vo.CategoryPerformance, vo.PriorityMedium,
		"Événement tendance",
		"« {{event_title}} » fait partie des événements tendance !",
	},
	vo.NotificationTypeRatingUpdated: {
		vo.CategoryPerformance, vo.PriorityLow,
		"Note mise à jour",
		"Votre note moyenne est maintenant de {{rating}}/5.",
	},
	vo.NotificationTypeAttendanceReport: {
		vo.CategoryPerformance, vo.PriorityLow,
		"Rapport de fréquentation",
		"{{attendees}} participants étaient présents à « {{event_title}} ».",
	},

	// System
	vo.NotificationTypeWelcome: {
		vo.CategorySystem, vo.PriorityMedium,
		"Bienvenue sur Fiwè",
		"Bonjour {{user_name}}, bienvenue sur Fiwè !",
	},
	vo.NotificationTypeAccountVerified: {
		vo.CategorySystem, vo.PriorityMedium,
		"Compte vérifié",
		"Votre compte a été vérifié avec succès.",
	},
	vo.NotificationTypePasswordChanged: {
		vo.CategorySystem, vo.PriorityHigh,
		"Mot de passe modifié",
		"Votre mot de passe a été modifié. Si ce n'était pas vous, contactez le support.",
	},
	vo.NotificationTypeProfileUpdated: {
		vo.CategorySystem, vo.PriorityLow,
		"Profil mis à jour",
		"Les informations de votre profil ont été mises à jour.",
	},
	vo.NotificationTypeNewLogin: {
		vo.CategorySystem, vo.PriorityMedium,
		"Nouvelle connexion",
		"Nouvelle connexion depuis {{device}} ({{location}}).",
	},
	vo.NotificationTypeSystemMaintenance: {
		vo.CategorySystem, vo.PriorityMedium,
		"Maintenance programmée",
		"Une maintenance est prévue le {{start_time}} pendant {{duration}}.",
	},
	vo.NotificationTypeTermsUpdated: {
		vo.CategorySystem, vo.PriorityLow,
		"Conditions mises à jour",
		"Nos conditions d'utilisation ont évolué.",
	},
	vo.NotificationTypeFeatureAnnouncement: {
		vo.CategorySystem, vo.PriorityLow,
		"Nouveauté",
		"Découvrez {{feature_name}} : {{description}}",
	},
	vo.NotificationTypeAccountDeactivated: {
		vo.CategorySystem, vo.PriorityHigh,
		"Compte désactivé",
		"Votre compte a été désactivé. {{reason}}",
	},

	// Commercial
	vo.NotificationTypePromotion: {
		vo.CategoryCommercial, vo.PriorityLow,
		"Promotion",
		"{{promotion_title}} : {{description}}",
	},
	vo.NotificationTypeDiscountCode: {
		vo.CategoryCommercial, vo.PriorityLow,
		"Code de réduction",
		"Profitez de {{discount}} % avec le code {{code}}.",
	},
	vo.NotificationTypeNewsletter: {
		vo.CategoryCommercial, vo.PriorityLow,
		"Newsletter",
		"{{subject}}",
	},
	vo.NotificationTypePartnerOffer: {
		vo.CategoryCommercial, vo.PriorityLow,
		"Offre partenaire",
		"{{partner_name}} vous propose : {{description}}",
	},
	vo.NotificationTypeEarlyBirdOffer: {
		vo.CategoryCommercial, vo.PriorityLow,
		"Tarif early bird",
		"Réservez « {{event_title}} » avant le {{deadline}} pour un tarif réduit.",
	},
	vo.NotificationTypeSubscriptionExpiring: {
		vo.CategoryCommercial, vo.PriorityMedium,
		"Abonnement bientôt expiré",
		"Votre abonnement expire le {{expiry_date}}.",
	},

	// Personalized
	vo.NotificationTypeRecommendedEvent: {
		vo.CategoryPersonalized, vo.PriorityLow,
		"Recommandé pour vous",
		"« {{event_title}} » pourrait vous plaire.",
	},
	vo.NotificationTypeNearbyEvent: {
		vo.CategoryPersonalized, vo.PriorityLow,
		"Près de chez vous",
		"« {{event_title}} » a lieu près de chez vous, à {{location}}.",
	},
	vo.NotificationTypeFavoriteOrganizerEvent: {
		vo.CategoryPersonalized, vo.PriorityLow,
		"Nouvel événement d'un organisateur suivi",
		"{{organizer_name}} a publié « {{event_title}} ».",
	},
	vo.NotificationTypeCategoryInterestEvent: {
		vo.CategoryPersonalized, vo.PriorityLow,
		"Dans vos centres d'intérêt",
		"Nouvel événement {{category}} : « {{event_title}} ».",
	},
	vo.NotificationTypeSavedEventReminder: {
		vo.CategoryPersonalized, vo.PriorityLow,
		"Événement sauvegardé",
		"N'oubliez pas « {{event_title}} », que vous avez sauvegardé.",
	},
	vo.NotificationTypeBirthdayGreeting: {
		vo.CategoryPersonalized, vo.PriorityLow,
		"Joyeux anniversaire !",
		"Joyeux anniversaire {{user_name}} ! Toute l'équipe Fiwè vous souhaite une belle journée.",
	},

	// Urgent
	vo.NotificationTypeSecurityAlert: {
		vo.CategoryUrgent, vo.PriorityUrgent,
		"Alerte de sécurité",
		"{{details}}",
	},
	vo.NotificationTypeSuspiciousActivity: {
		vo.CategoryUrgent, vo.PriorityUrgent,
		"Activité suspecte",
		"Une activité inhabituelle a été détectée sur votre compte : {{details}}",
	},
	vo.NotificationTypeEventEmergencyCancellation: {
		vo.CategoryUrgent, vo.PriorityUrgent,
		"Annulation d'urgence",
		"« {{event_title}} » est annulé en urgence. {{reason}}",
	},
	vo.NotificationTypeVenueChangeUrgent: {
		vo.CategoryUrgent, vo.PriorityUrgent,
		"Changement de lieu urgent",
		"« {{event_title}} » est déplacé à {{location}}.",
	},
	vo.NotificationTypePaymentDispute: {
		vo.CategoryUrgent, vo.PriorityUrgent,
		"Litige de paiement",
		"Un litige a été ouvert sur le paiement de {{amount}} FCFA.",
	},
	vo.NotificationTypeAccountSuspended: {
		vo.CategoryUrgent, vo.PriorityUrgent,
		"Compte suspendu",
		"Votre compte a été suspendu. {{reason}}",
	},
	vo.NotificationTypeSafetyAlert: {
		vo.CategoryUrgent, vo.PriorityUrgent,
		"Alerte sécurité",
		"{{details}}",
	},
}

// Lookup returns the catalog entry for t, with any loaded overrides applied.
func Lookup(t vo.NotificationType) (Template, bool) {
	overridesMu.RLock()
	defer overridesMu.RUnlock()

	tpl, ok := catalog[t]
	if !ok {
		return Template{}, false
	}
	if o, ok := overrides[t]; ok {
		tpl = o.apply(tpl)
	}
	return tpl, true
}

// CategoryOf resolves a notification type to its category.
func CategoryOf(t vo.NotificationType) (vo.Category, bool) {
	tpl, ok := catalog[t]
	return tpl.Category, ok
}

// DefaultPriority returns the type's default priority, or MEDIUM for an
// unknown type.
func DefaultPriority(t vo.NotificationType) vo.Priority {
	tpl, ok := Lookup(t)
	if !ok {
		return vo.PriorityMedium
	}
	return tpl.Priority
}

// CategoryGroup is a category with its member types in display order.
type CategoryGroup struct {
	vo.CategoryInfo
	Types []vo.NotificationType
}

// Categories returns every category with its ordered member types.
func Categories() []CategoryGroup {
	infos := vo.CategoryInfos()
	groups := make([]CategoryGroup, 0, len(infos))
	for _, info := range infos {
		group := CategoryGroup{CategoryInfo: info}
		for _, t := range vo.AllNotificationTypes {
			if catalog[t].Category == info.ID {
				group.Types = append(group.Types, t)
			}
		}
		groups = append(groups, group)
	}
	return groups
}
