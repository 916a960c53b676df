package tests

import (
	"net/http"
	"testing"

	"github.com/harmonyhs/harmony/core/child"
	"github.com/harmonyhs/harmony/core/lesson"
	"github.com/harmonyhs/harmony/core/subject"
	"github.com/harmonyhs/harmony/core/user"
	testutil "github.com/harmonyhs/harmony/tests"
)

func Test_lessonApi(t *testing.T) {
	resetDB(t)

	mom := testutil.CreateUser(t, usrRepo, "Mom", "mom", "mom@test.cd", "", []string{user.RoleParent}, true)
	momToken := getToken(t, mom)

	create := func(t *testing.T, path string, body []byte, out interface{}) {
		t.Helper()
		req, rec := newAuthRequest(http.MethodPost, path, momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST %s code = %v; want %v; body %s", path, rec.Code, http.StatusCreated, rec.Body.String())
		}
		unmarshallObj(t, rec.Body.Bytes(), out)
	}

	var kid child.Child
	create(t, "/v1/children", marshallObj(t, map[string]string{"name": "Ada"}), &kid)

	var math subject.Subject
	create(t, "/v1/subjects", marshallObj(t, map[string]string{"name": "Math"}), &math)

	var curr subject.Curriculum
	create(t, "/v1/curricula", marshallObj(t, map[string]string{
		"subject_id": math.ID, "child_id": kid.ID, "name": "Math 2",
	}), &curr)

	var l lesson.Lesson

	t.Run("create", func(t *testing.T) {
		create(t, "/v1/lessons", marshallObj(t, map[string]interface{}{
			"curriculum_id": curr.ID,
			"title":         "Fractions",
			"date":          "2026-09-02",
		}), &l)
		if l.Status != lesson.StatusPlanned {
			t.Errorf("status = %s; want %s", l.Status, lesson.StatusPlanned)
		}
	})

	t.Run("filter by curriculum", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/lessons?curriculum="+curr.ID, momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var lessons []lesson.Lesson
		unmarshallObj(t, rec.Body.Bytes(), &lessons)
		if len(lessons) != 1 {
			t.Errorf("lessons = %d; want 1", len(lessons))
		}
	})

	t.Run("week plan includes the lesson", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/lessons/week?date=2026-09-02", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var wk lesson.WeekPlan
		unmarshallObj(t, rec.Body.Bytes(), &wk)
		if wk.WeekStart != "2026-08-31" {
			t.Errorf("week_start = %s; want 2026-08-31", wk.WeekStart)
		}
		var found bool
		for _, day := range wk.Days {
			if day.Date == "2026-09-02" && len(day.Lessons) == 1 {
				found = true
			}
		}
		if !found {
			t.Error("expected the lesson on 2026-09-02")
		}
	})

	t.Run("assign grade marks done", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{"score": 9, "max": 10, "letter": "A"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/lessons/"+l.ID+"/grade", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var graded lesson.Lesson
		unmarshallObj(t, rec.Body.Bytes(), &graded)
		if graded.Status != lesson.StatusDone {
			t.Errorf("status = %s; want %s", graded.Status, lesson.StatusDone)
		}
		if graded.Grade == nil || graded.Grade.Score != 9 {
			t.Errorf("grade = %+v; want score 9", graded.Grade)
		}
	})

	t.Run("grade max must cover score", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{"score": 11, "max": 10})
		req, rec := newAuthRequest(http.MethodPut, "/v1/lessons/"+l.ID+"/grade", momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("clear grade", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/lessons/"+l.ID+"/grade", momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var cleared lesson.Lesson
		unmarshallObj(t, rec.Body.Bytes(), &cleared)
		if cleared.Grade != nil {
			t.Errorf("grade = %+v; want nil", cleared.Grade)
		}
	})

	t.Run("reschedule", func(t *testing.T) {
		body := marshallObj(t, map[string]string{"date": "2026-09-03"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/lessons/"+l.ID, momToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var moved lesson.Lesson
		unmarshallObj(t, rec.Body.Bytes(), &moved)
		if moved.Date != "2026-09-03" {
			t.Errorf("date = %s; want 2026-09-03", moved.Date)
		}
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/lessons/"+l.ID, momToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}
	})
}
