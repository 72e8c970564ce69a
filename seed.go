package main

import (
	"log"

	"train-feedback-server/database"
	"train-feedback-server/models"
	"train-feedback-server/utils"
)

func seedUsers() error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("ℹ️ Users already seeded, skipping")
		return nil
	}

	accounts := []struct {
		userID   string
		name     string
		password string
		role     models.UserRole
	}{
		{"admin", "System Administrator", "admin123", models.RoleAdmin},
		{"operator", "Feedback Operator", "operator123", models.RoleOperator},
	}

	for _, account := range accounts {
		hash, err := utils.HashPassword(account.password)
		if err != nil {
			return err
		}
		user := models.User{
			UserID:       account.userID,
			Name:         account.name,
			PasswordHash: hash,
			Role:         account.role,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d user accounts", len(accounts))
	return nil
}

func seedReferenceData() error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.Train{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("ℹ️ Reference data already seeded, skipping")
		return nil
	}

	trains := []models.Train{
		{TrainNo: "12301", TrainName: "Howrah Rajdhani Express", IsActive: true},
		{TrainNo: "12302", TrainName: "New Delhi Rajdhani Express", IsActive: true},
		{TrainNo: "12321", TrainName: "Howrah Mumbai Mail", IsActive: true},
		{TrainNo: "12841", TrainName: "Coromandel Express", IsActive: true},
		{TrainNo: "12863", TrainName: "Howrah Yesvantpur Express", IsActive: true},
		{TrainNo: "13005", TrainName: "Amritsar Mail", IsActive: true},
	}
	for _, train := range trains {
		if err := db.Create(&train).Error; err != nil {
			return err
		}
	}

	stations := []models.Station{
		{Code: "HWH", Name: "Howrah Junction"},
		{Code: "SDAH", Name: "Sealdah"},
		{Code: "NDLS", Name: "New Delhi"},
		{Code: "CSMT", Name: "Mumbai CSMT"},
		{Code: "MAS", Name: "Chennai Central"},
		{Code: "YPR", Name: "Yesvantpur Junction"},
		{Code: "ASR", Name: "Amritsar Junction"},
	}
	for _, station := range stations {
		if err := db.Create(&station).Error; err != nil {
			return err
		}
	}

	coaches := []models.Coach{
		{Code: "A1"}, {Code: "A2"}, {Code: "B1"}, {Code: "B2"}, {Code: "B3"},
		{Code: "S1"}, {Code: "S2"}, {Code: "S3"}, {Code: "S4"}, {Code: "H1"},
	}
	for _, coach := range coaches {
		if err := db.Create(&coach).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d trains, %d stations, %d coaches", len(trains), len(stations), len(coaches))
	return nil
}
