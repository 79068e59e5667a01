package server

import (
	"encoding/json"
	"fmt"

	"github.com/mhasan/lifeos/backend/models"
)

// decodeBody unmarshals a command payload. An empty body is fine for
// commands whose payload fields are all optional.
func decodeBody(body []byte, v interface{}) error {
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid command payload: %v", err)
	}
	return nil
}

// dispatchCommand routes a named command to the corresponding store
// operation. Add commands return the created entity so the client can show
// it without refetching the whole aggregate.
func dispatchCommand(s *session, command string, body []byte) (interface{}, error) {
	switch command {

	case "addTask":
		var input models.Task
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		task, err := s.store.AddTask(input)
		if err != nil {
			return nil, err
		}
		return task, nil
	case "toggleTask":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.ToggleTask(p.ID)
		return nil, nil
	case "deleteTask":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteTask(p.ID)
		return nil, nil

	case "addGoal":
		var input models.Goal
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		goal, err := s.store.AddGoal(input)
		if err != nil {
			return nil, err
		}
		return goal, nil
	case "updateGoal":
		var input models.Goal
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		return nil, s.store.UpdateGoal(input)
	case "deleteGoal":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteGoal(p.ID)
		return nil, nil

	case "addProject":
		var input models.Project
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		project, err := s.store.AddProject(input)
		if err != nil {
			return nil, err
		}
		return project, nil
	case "updateProject":
		var input models.Project
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		return nil, s.store.UpdateProject(input)
	case "deleteProject":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteProject(p.ID)
		return nil, nil
	case "addPayment":
		var p struct {
			ProjectID string         `json:"projectId"`
			Payment   models.Payment `json:"payment"`
		}
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.AddPayment(p.ProjectID, p.Payment)
		return nil, nil

	case "addReminder":
		var input models.Reminder
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		reminder, err := s.store.AddReminder(input)
		if err != nil {
			return nil, err
		}
		return reminder, nil
	case "deleteReminder":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteReminder(p.ID)
		return nil, nil
	case "dismissReminder":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DismissReminder(p.ID)
		return nil, nil

	case "addTransaction":
		var input models.Transaction
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		transaction, err := s.store.AddTransaction(input)
		if err != nil {
			return nil, err
		}
		return transaction, nil
	case "deleteTransaction":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteTransaction(p.ID)
		return nil, nil
	case "addBudget":
		var p struct {
			Category string  `json:"category"`
			Limit    float64 `json:"limit"`
		}
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		return s.store.AddBudget(p.Category, p.Limit), nil
	case "deleteBudget":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteBudget(p.ID)
		return nil, nil

	case "addLearning":
		var input models.LearningLog
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		entry, err := s.store.AddLearning(input)
		if err != nil {
			return nil, err
		}
		return entry, nil
	case "deleteLearning":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteLearning(p.ID)
		return nil, nil

	case "addHabit":
		var input models.Habit
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		habit, err := s.store.AddHabit(input)
		if err != nil {
			return nil, err
		}
		return habit, nil
	case "toggleHabit":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.ToggleHabit(p.ID)
		return nil, nil
	case "deleteHabit":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteHabit(p.ID)
		return nil, nil

	case "addWorkout":
		var input models.Workout
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		return s.store.AddWorkout(input), nil
	case "deleteWorkout":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteWorkout(p.ID)
		return nil, nil
	case "addWeightEntry":
		var input models.WeightEntry
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		return s.store.AddWeightEntry(input), nil
	case "deleteWeightEntry":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteWeightEntry(p.ID)
		return nil, nil

	case "addApplication":
		var input models.JobApplication
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		application, err := s.store.AddApplication(input)
		if err != nil {
			return nil, err
		}
		return application, nil
	case "updateApplicationStatus":
		var p struct {
			ID     string                   `json:"id"`
			Status models.ApplicationStatus `json:"status"`
		}
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.UpdateApplicationStatus(p.ID, p.Status)
		return nil, nil
	case "deleteApplication":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteApplication(p.ID)
		return nil, nil

	case "addPortfolioItem":
		var input models.PortfolioItem
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		return s.store.AddPortfolioItem(input), nil
	case "deletePortfolioItem":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeletePortfolioItem(p.ID)
		return nil, nil
	case "addCertification":
		var input models.Certification
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		return s.store.AddCertification(input), nil
	case "deleteCertification":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteCertification(p.ID)
		return nil, nil
	case "addSkill":
		var input models.Skill
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		return s.store.AddSkill(input), nil
	case "deleteSkill":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteSkill(p.ID)
		return nil, nil
	case "addLink":
		var input models.SocialLink
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		return s.store.AddLink(input), nil
	case "deleteLink":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteLink(p.ID)
		return nil, nil
	case "updateProfile":
		var input models.UserProfile
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		s.store.UpdateProfile(input)
		return nil, nil
	case "toggleTheme":
		var p struct {
			Theme string `json:"theme"`
		}
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.ToggleTheme(p.Theme)
		return nil, nil

	case "updateQuranProgress":
		var p struct {
			Page int `json:"page"`
			Juz  int `json:"juz"`
		}
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.UpdateQuranProgress(p.Page, p.Juz)
		return nil, nil
	case "addHifzItem":
		var input models.HifzItem
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		return s.store.AddHifzItem(input), nil
	case "updateHifzStatus":
		var p struct {
			ID     string            `json:"id"`
			Status models.HifzStatus `json:"status"`
		}
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.UpdateHifzStatus(p.ID, p.Status)
		return nil, nil
	case "deleteHifzItem":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteHifzItem(p.ID)
		return nil, nil
	case "togglePrayer":
		var p struct {
			Prayer string `json:"prayer"`
		}
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.TogglePrayer(p.Prayer)
		return nil, nil
	case "incrementAzkar":
		var p struct {
			ID     string `json:"id"`
			Amount int    `json:"amount"`
		}
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.IncrementAzkar(p.ID, p.Amount)
		return nil, nil
	case "addAzkarItem":
		var input models.AzkarItem
		if err := decodeBody(body, &input); err != nil {
			return nil, err
		}
		return s.store.AddAzkarItem(input), nil
	case "deleteAzkarItem":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteAzkarItem(p.ID)
		return nil, nil
	case "resetAzkar":
		s.store.ResetAzkar()
		return nil, nil
	case "addTasbih":
		var p struct {
			Label  string `json:"label"`
			Target int    `json:"target"`
		}
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		return s.store.AddTasbih(p.Label, p.Target), nil
	case "updateTasbih":
		var p struct {
			ID    string `json:"id"`
			Count int    `json:"count"`
		}
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.UpdateTasbih(p.ID, p.Count)
		return nil, nil
	case "resetTasbih":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.ResetTasbih(p.ID)
		return nil, nil
	case "deleteTasbih":
		var p idPayload
		if err := decodeBody(body, &p); err != nil {
			return nil, err
		}
		s.store.DeleteTasbih(p.ID)
		return nil, nil

	case "clearData":
		s.store.ClearData()
		return nil, nil
	}

	return nil, fmt.Errorf("unknown command %q", command)
}
