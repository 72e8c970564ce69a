package models

import "time"

// Train is a reference row for the entry form's train dropdown. Selecting a
// train number auto-fills the train name.
type Train struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TrainNo   string    `json:"trainNo" gorm:"size:10;uniqueIndex;not null"`
	TrainName string    `json:"trainName" gorm:"size:100;not null"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Train) TableName() string { return "trains" }

// Station is a reference row for the from/to station dropdowns
type Station struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"size:10;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Station) TableName() string { return "stations" }

// Coach is a reference row for the coach dropdown
type Coach struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"size:10;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Coach) TableName() string { return "coaches" }
