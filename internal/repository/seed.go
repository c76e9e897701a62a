package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/edumanage-api/internal/models"
)

// SeedDemoData writes the demo roster and catalog when their documents do
// not exist yet. Existing documents are never touched.
func (s *Store) SeedDemoData(ctx context.Context) error {
	created, err := s.create(ctx, DocStudents, DemoStudents())
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("seeded demo roster", zap.String("document", s.Key(DocStudents)))
	}

	created, err = s.create(ctx, DocCourses, DemoCourses())
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("seeded demo catalog", zap.String("document", s.Key(DocCourses)))
	}
	return nil
}

// DemoStudents returns the initial roster.
func DemoStudents() []models.Student {
	return []models.Student{
		{ID: "STD-2024-001", FirstName: "Emma", LastName: "Wilson", Email: "emma.wilson@email.com", Phone: "+1 234 567 8901", Class: "Grade 10 - Science A", EnrollDate: "2024-05-12", Status: models.StudentStatusActive, AvatarColor: "#4361ee"},
		{ID: "STD-2024-002", FirstName: "James", LastName: "Davis", Email: "james.davis@email.com", Phone: "+1 234 567 8902", Class: "Grade 11 - Mathematics", EnrollDate: "2024-06-10", Status: models.StudentStatusActive, AvatarColor: "#f72585"},
		{ID: "STD-2024-003", FirstName: "Sophia", LastName: "Martinez", Email: "sophia.m@email.com", Phone: "+1 234 567 8903", Class: "Grade 9 - English Lit", EnrollDate: "2024-08-15", Status: models.StudentStatusActive, AvatarColor: "#4cc9f0"},
		{ID: "STD-2024-004", FirstName: "Liam", LastName: "Brown", Email: "liam.b@email.com", Phone: "+1 234 567 8904", Class: "Grade 10 - Science A", EnrollDate: "2024-09-01", Status: models.StudentStatusActive, AvatarColor: "#7209b7"},
		{ID: "STD-2024-005", FirstName: "Ava", LastName: "Garcia", Email: "ava.g@email.com", Phone: "+1 234 567 8905", Class: "Grade 11 - Mathematics", EnrollDate: "2024-08-20", Status: models.StudentStatusActive, AvatarColor: "#f77f00"},
		{ID: "STD-2024-006", FirstName: "Noah", LastName: "Martinez", Email: "noah.m@email.com", Phone: "+1 234 567 8906", Class: "Grade 9 - English Lit", EnrollDate: "2024-07-15", Status: models.StudentStatusActive, AvatarColor: "#d62828"},
		{ID: "STD-2024-007", FirstName: "Isabella", LastName: "Davis", Email: "isabella.d@email.com", Phone: "+1 234 567 8907", Class: "Grade 12 - Physics", EnrollDate: "2024-06-01", Status: models.StudentStatusActive, AvatarColor: "#003566"},
		{ID: "STD-2024-008", FirstName: "Mason", LastName: "Rodriguez", Email: "mason.r@email.com", Phone: "+1 234 567 8908", Class: "Grade 10 - Science A", EnrollDate: "2024-05-10", Status: models.StudentStatusInactive, AvatarColor: "#588157"},
	}
}

// DemoCourses returns the initial catalog.
func DemoCourses() []models.Course {
	return []models.Course{
		{ID: "CRSE-001", Code: "MATH-101", Title: "Advanced Mathematics", Students: 28, Hours: 48, Instructor: "Michael Kumar", Status: models.CourseStatusActive, Theme: "blue"},
		{ID: "CRSE-002", Code: "BIOL-201", Title: "Biology & Life Sciences", Students: 32, Hours: 40, Instructor: "Dr. Linda Johnson", Status: models.CourseStatusActive, Theme: "purple"},
		{ID: "CRSE-003", Code: "CHEM-102", Title: "Chemistry Fundamentals", Students: 25, Hours: 44, Instructor: "Sarah Peterson", Status: models.CourseStatusUpcoming, Theme: "teal"},
		{ID: "CRSE-004", Code: "ENG-301", Title: "English Literature", Students: 30, Hours: 36, Instructor: "Dr. Sarah Smith", Status: models.CourseStatusActive, Theme: "orange"},
		{ID: "CRSE-005", Code: "ART-105", Title: "Digital Art & Design", Students: 24, Hours: 48, Instructor: "Rachel Jones", Status: models.CourseStatusActive, Theme: "pink"},
		{ID: "CRSE-006", Code: "PHY-202", Title: "Physics & Mechanics", Students: 26, Hours: 52, Instructor: "Dr. Thomas Phillips", Status: models.CourseStatusActive, Theme: "green"},
	}
}
