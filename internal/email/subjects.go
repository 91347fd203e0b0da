package email

const (
	subjectBookingConfirmation  = "Your consultation is booked"
	subjectConsultationReminder = "Reminder: your consultation is tomorrow"
)

const meetingTimeFormat = "Monday, January 2 at 3:04 PM MST"
