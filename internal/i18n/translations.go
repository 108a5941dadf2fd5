package i18n

var translations = map[string]map[string]string{
	"en": {
		"booking.title":    "Book Your Appointment",
		"booking.subtitle": "Schedule your consultation in 3 simple steps",
		"booking.back":     "Back",
		"booking.next":     "Continue",

		"booking.steps.step1": "Date & Time",
		"booking.steps.step2": "Details",
		"booking.steps.step3": "Payment",
		"booking.steps.step4": "Confirmation",

		"booking.step1.title":      "Select Date & Time",
		"booking.step1.selectDate": "Select Date",
		"booking.step1.selectTime": "Select Time Slot",
		"booking.step1.noSlots":    "No slots available for this date. Please select another date.",

		"booking.step2.title": "Patient Information",

		"booking.step3.title":           "Payment & Confirmation",
		"booking.step3.consultationFee": "Consultation Fee",
		"booking.step3.processing":      "Processing...",

		"booking.success.title":    "Appointment Confirmed!",
		"booking.success.subtitle": "Your appointment has been booked successfully",

		"booking.errors.selectDateTime":   "Please select both date and time",
		"booking.errors.fillRequired":     "Please fill all required fields",
		"booking.errors.invalidPhone":     "Please enter a valid 10-digit mobile number",
		"booking.errors.invalidEmail":     "Please enter a valid email address",
		"booking.errors.slotsError":       "Error loading time slots. Please try again.",
		"booking.errors.bookingFailed":    "Failed to book appointment. Please try again.",
		"booking.errors.paymentFailed":    "Payment verification failed. Please contact us.",
		"booking.errors.paymentCancelled": "Payment cancelled",

		"booking.mockPayment": "Using test payment mode (Razorpay not configured)",
	},
	"hi": {
		"booking.title":    "अपना अपॉइंटमेंट बुक करें",
		"booking.subtitle": "3 सरल चरणों में अपना परामर्श शेड्यूल करें",
		"booking.back":     "वापस",
		"booking.next":     "जारी रखें",

		"booking.steps.step1": "तारीख और समय",
		"booking.steps.step2": "विवरण",
		"booking.steps.step3": "भुगतान",
		"booking.steps.step4": "पुष्टि",

		"booking.step1.title":      "तारीख और समय चुनें",
		"booking.step1.selectDate": "तारीख चुनें",
		"booking.step1.selectTime": "समय स्लॉट चुनें",
		"booking.step1.noSlots":    "इस तारीख के लिए कोई स्लॉट उपलब्ध नहीं है। कृपया दूसरी तारीख चुनें।",

		"booking.step2.title": "रोगी की जानकारी",

		"booking.step3.title":           "भुगतान और पुष्टि",
		"booking.step3.consultationFee": "परामर्श शुल्क",
		"booking.step3.processing":      "प्रोसेसिंग...",

		"booking.success.title":    "अपॉइंटमेंट कन्फर्म!",
		"booking.success.subtitle": "आपका अपॉइंटमेंट सफलतापूर्वक बुक हो गया है",

		"booking.errors.selectDateTime":   "कृपया तारीख और समय दोनों चुनें",
		"booking.errors.fillRequired":     "कृपया सभी आवश्यक फ़ील्ड भरें",
		"booking.errors.invalidPhone":     "कृपया एक वैध 10 अंकों का मोबाइल नंबर दर्ज करें",
		"booking.errors.invalidEmail":     "कृपया एक वैध ईमेल पता दर्ज करें",
		"booking.errors.slotsError":       "समय स्लॉट लोड करने में त्रुटि। कृपया पुनः प्रयास करें।",
		"booking.errors.bookingFailed":    "अपॉइंटमेंट बुक करने में विफल। कृपया पुनः प्रयास करें।",
		"booking.errors.paymentFailed":    "भुगतान सत्यापन विफल। कृपया हमसे संपर्क करें।",
		"booking.errors.paymentCancelled": "भुगतान रद्द कर दिया गया",

		"booking.mockPayment": "टेस्ट भुगतान मोड का उपयोग करना (Razorpay कॉन्फ़िगर नहीं है)",
	},
}
