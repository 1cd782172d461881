package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/habitflow/internal/backup"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/habits"
	"github.com/julianstephens/habitflow/internal/utils"
)

type createHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	TargetDays  []int  `json:"targetDays"`
}

type progressRequest struct {
	Completed *bool  `json:"completed"`
	Note      string `json:"note"`
}

type toggleRequest struct {
	Note string `json:"note"`
}

func badRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": constants.Version})
}

func (s *Server) listHabits(c *fiber.Ctx) error {
	list, err := s.service(c).List(!c.QueryBool("active", false))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (s *Server) createHabit(c *fiber.Ctx) error {
	var req createHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}
	habit, err := s.service(c).Create(habits.HabitInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		TargetDays:  req.TargetDays,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (s *Server) getHabit(c *fiber.Ctx) error {
	habit, err := s.service(c).Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(habit)
}

func (s *Server) updateHabit(c *fiber.Ctx) error {
	var patch habits.HabitPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest("invalid request body")
	}
	habit, err := s.service(c).Update(c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(habit)
}

func (s *Server) deleteHabit(c *fiber.Ctx) error {
	if err := s.service(c).Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "habit deleted"})
}

func (s *Server) habitStats(c *fiber.Ctx) error {
	st, err := s.service(c).Stats(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (s *Server) habitWeek(c *fiber.Ctx) error {
	week, err := s.service(c).Week(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(week)
}

func (s *Server) habitCalendar(c *fiber.Ctx) error {
	svc := s.service(c)
	today := svc.Calendar().Today()
	year, month := today.Year(), today.Month()
	if q := c.Query("month"); q != "" {
		var err error
		if year, month, err = utils.ParseMonth(q); err != nil {
			return badRequest("invalid month, expected YYYY-MM")
		}
	}
	view, err := svc.Month(c.Params("id"), year, month)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (s *Server) toggleProgress(c *fiber.Ctx) error {
	var req toggleRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest("invalid request body")
		}
	}
	entry, err := s.service(c).Toggle(c.Params("id"), c.Params("date"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(entry)
}

func (s *Server) setProgress(c *fiber.Ctx) error {
	var req progressRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Completed == nil {
		return badRequest("completed is required")
	}
	entry, err := s.service(c).SetProgress(c.Params("id"), c.Params("date"), *req.Completed, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(entry)
}

func (s *Server) listProgress(c *fiber.Ctx) error {
	entries, err := s.service(c).Progress()
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (s *Server) dashboard(c *fiber.Ctx) error {
	dash, err := s.service(c).Dashboard()
	if err != nil {
		return err
	}
	return c.JSON(dash)
}

func (s *Server) export(c *fiber.Ctx) error {
	svc := s.service(c)
	data, err := svc.Export()
	if err != nil {
		return err
	}
	body, err := backup.EncodeExport(data)
	if err != nil {
		return err
	}
	c.Attachment(backup.ExportFileName(svc.Calendar().Now()))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

func (s *Server) importData(c *fiber.Ctx) error {
	data, err := backup.DecodeExport(c.Body())
	if err != nil {
		return err
	}
	result, err := s.service(c).Import(data)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"habits": result.Habits, "progress": result.Progress})
}
