package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/backoffice/backend/internal/domain/entity"
	"github.com/backoffice/backend/internal/domain/valueobject"
	"github.com/backoffice/backend/internal/integration/persistence"
	"github.com/backoffice/backend/internal/integration/persistence/model"
)

const dateLayout = "2006-01-02"

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("test server is not running: %w", err)
	}
	resp.Body.Close()
	return nil
}

func (t *testContext) theCurrentDateIs(date string) error {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(d.Add(9 * time.Hour))
	return nil
}

func (t *testContext) iAmLoggedInAs(role, email string) error {
	user := &entity.User{
		ID:    uuid.New(),
		Email: email,
		Name:  "Test User",
		Role:  entity.UserRole(role),
	}
	if err := t.createUser(user, "DefaultPass123"); err != nil {
		return err
	}

	token, _, err := t.tokens.GenerateAccessToken(context.Background(), user)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(&entity.User{
		ID:    uuid.New(),
		Email: email,
		Name:  "Test User",
		Role:  entity.UserRoleStaff,
	}, password)
}

func (t *testContext) createUser(user *entity.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	return t.db.DbConn.Create(&model.UserModel{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: string(hashed),
		Role:         string(user.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
}

// tableRows maps each data row of a godog table by its header.
func tableRows(table *godog.Table) []map[string]string {
	if len(table.Rows) == 0 {
		return nil
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows
}

func optionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (t *testContext) theFollowingInvoicesExist(table *godog.Table) error {
	for _, row := range tableRows(table) {
		issueDate, err := time.Parse(dateLayout, row["issue_date"])
		if err != nil {
			return err
		}
		paidDate, err := optionalDate(row["paid_date"])
		if err != nil {
			return err
		}
		invoice := entity.NewInvoice(row["invoice_number"], nil, valueobject.RawAmount(row["amount"]), "USD", issueDate, row["status"], paidDate)
		if err := t.db.DbConn.Create(model.InvoiceFromEntity(invoice)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theFollowingExpensesExist(table *godog.Table) error {
	for _, row := range tableRows(table) {
		date, err := time.Parse(dateLayout, row["date"])
		if err != nil {
			return err
		}
		expense := entity.NewExpense(row["description"], valueobject.RawAmount(row["amount"]), date, row["category"], row["status"])
		if err := t.db.DbConn.Create(model.ExpenseFromEntity(expense)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theFollowingSalaryPaymentsExist(table *godog.Table) error {
	for _, row := range tableRows(table) {
		payment := &entity.SalaryPayment{
			ID:         uuid.New(),
			EmployeeID: uuid.New(),
			Amount:     valueobject.RawAmount(row["amount"]),
			NetAmount:  valueobject.RawAmount(row["net_amount"]),
			Month:      row["month"],
			Status:     row["status"],
		}
		if err := t.db.DbConn.Create(model.SalaryPaymentFromEntity(payment)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theFollowingClientsExist(table *godog.Table) error {
	for _, row := range tableRows(table) {
		client := &entity.Client{
			ID:       uuid.New(),
			Name:     row["name"],
			Status:   row["status"],
			Retainer: valueobject.RawAmount(row["retainer"]),
		}
		if err := t.db.DbConn.Create(model.ClientFromEntity(client)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theEmailServiceFailsWithStatus(status int) error {
	t.emailAPI.SetResponse(-1, http.MethodPost, emailsPath, status, map[string]any{
		"statusCode": status,
		"name":       "validation_error",
		"message":    "validation error: invalid to address",
	})
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSendRequestsToWithBody(count int, method, path string, body *godog.DocString) error {
	for i := 0; i < count; i++ {
		if err := t.iSendARequestToWithBody(method, path, body); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	return strings.ReplaceAll(content, "{{last_id}}", t.lastID.String())
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, t.server.URL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture created record IDs for follow-up requests
	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastID = id
		}
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, count, len(items), items)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theQuarterShouldBe(quarterID, status string) error {
	q, err := persistence.NewQuarterRepository(t.db.DbConn).FindByQuarterID(context.Background(), quarterID)
	if err != nil {
		return fmt.Errorf("failed to load quarter %s: %w", quarterID, err)
	}
	if string(q.Status()) != status {
		return fmt.Errorf("quarter %s expected to be %s, got %s", quarterID, status, q.Status())
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entityModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) emailsShouldHaveBeenSent(count int) error {
	if sent := t.emailAPI.RequestCount(http.MethodPost, emailsPath); sent != count {
		return fmt.Errorf("expected %d emails, got %d", count, sent)
	}
	return nil
}

func (t *testContext) emailShouldBeSentToWithSubject(index int, to, subject string) error {
	request := t.emailAPI.GetRequestBody(http.MethodPost, emailsPath, index-1)
	if request == nil {
		return fmt.Errorf("email %d was not sent", index)
	}

	recipients, _ := request["to"].([]any)
	if len(recipients) == 0 || fmt.Sprintf("%v", recipients[0]) != to {
		return fmt.Errorf("email %d expected recipient %s, got %v", index, to, request["to"])
	}
	if request["subject"] != subject {
		return fmt.Errorf("email %d expected subject %q, got %v", index, subject, request["subject"])
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	var field any = objectMap
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
