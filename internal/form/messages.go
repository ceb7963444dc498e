package form

// Messages shown in the error banner.
const (
	MsgNotImage      = "يرجى اختيار ملف صورة صحيح"
	MsgDropNotImage  = "يرجى اختيار ملف صورة صحيح (PNG, JPG, JPEG)"
	MsgTooLarge      = "حجم الصورة كبير جداً. الحد الأقصى 16 ميجابايت"
	MsgNoImage       = "يرجى اختيار صورة"
	MsgNameRequired  = "يرجى إدخال الاسم بالعربية"
	MsgGenerateFail  = "فشل في إنشاء الصورة"
	MsgGenerateError = "حدث خطأ أثناء إنشاء الصورة. يرجى المحاولة مرة أخرى"
	MsgNoResult      = "لا توجد صورة للتحميل"
)
