// internal/assistant/escalation/messages.go
package escalation

// User-facing texts for each escalation outcome. These are deterministic; the
// localizer may reformat them downstream but never invents new content.
const (
	UnrecognizedSavedMessage = "I couldn't understand your specific request. Your question has been saved and our team will review it shortly. You can also try rephrasing your question or contact our customer care at 1800-233-4526."

	UnrecognizedSaveFailedMessage = "I couldn't understand your specific request. Please try rephrasing your question or contact our customer care at 1800-233-4526 for assistance."

	GeneralInquirySavedMessage = "Thank you for your question. Since this requires detailed information, I've forwarded it to our expert team for a comprehensive answer. You'll receive a response soon, or you can contact our customer care at 1800-233-4526 for immediate assistance."

	SpecificQuestionSavedMessage = "Thank you for your specific question. I've saved it for our expert team to review and provide you with a detailed answer. You can also contact our customer care at 1800-233-4526 for immediate assistance."

	SaveFailedMessage = "Thank you for your question. For detailed information about this topic, please contact our customer care at 1800-233-4526 where our experts can assist you better."
)
