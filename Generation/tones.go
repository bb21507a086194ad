package Generation

var toneDescriptions = map[string]string{
	"Formal":     "professional and business-appropriate",
	"Friendly":   "warm and approachable while maintaining professionalism",
	"Persuasive": "convincing and compelling while being respectful",
	"Apologetic": "sincere and remorseful while maintaining professionalism",
	"Assertive":  "confident and direct while remaining professional",
}

var toneGreetings = map[string]string{
	"Formal":     "Dear Sir/Madam,",
	"Friendly":   "Hi,",
	"Persuasive": "Dear Sir/Madam,",
	"Apologetic": "Dear Sir/Madam,",
	"Assertive":  "Dear Sir/Madam,",
}

var toneClosings = map[string]string{
	"Formal":     "Best regards,",
	"Friendly":   "Thanks and best wishes,",
	"Persuasive": "Looking forward to your positive response,",
	"Apologetic": "Sincerely apologizing,",
	"Assertive":  "Best regards,",
}
