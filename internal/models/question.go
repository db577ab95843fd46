package models

// QuestionOption is one answer choice, embedded on the question document.
type QuestionOption struct {
	ID          string `bson:"id" json:"id"`
	Text        string `bson:"text" json:"text"`
	IsCorrect   bool   `bson:"is_correct" json:"is_correct"`
	OptionOrder int    `bson:"option_order" json:"option_order"`
}

// Question is one bank question. DifficultRate is a normalized difficulty
// in [0,1] used by the adaptive difficulty window.
type Question struct {
	ID            string           `bson:"_id,omitempty" json:"id"`
	Text          string           `bson:"text" json:"text"`
	Explanation   string           `bson:"explanation" json:"explanation"`
	AcademyID     int              `bson:"academy_id" json:"academy_id"`
	TopicTypeID   *int             `bson:"topic_type_id" json:"topic_type_id"`
	SpecialtyID   *int             `bson:"specialty_id" json:"specialty_id"`
	DifficultRate float64          `bson:"difficult_rate" json:"difficult_rate"`
	Options       []QuestionOption `bson:"options" json:"options"`
}
