package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/classpoint/classpoint/apiclient"
	"github.com/classpoint/classpoint/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp          = errors.New("help provided")
	errNotLoggedIn   = errors.New("not logged in")
	errMissingListBy = errors.New("pass -teacher ID or -student ID")
)

type commandLine struct {
	client *apiclient.Client
	sess   *session.Service
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME              - log in; the password is prompted next")
	fmt.Fprintln(cli.out, "  register -name NAME -username USERNAME -role student|teacher")
	fmt.Fprintln(cli.out, "  logout                                - clear the current session")
	fmt.Fprintln(cli.out, "  whoami                                - show the current session")
	fmt.Fprintln(cli.out, "  subjects                              - list subjects")
	fmt.Fprintln(cli.out, "  students [-groups]                    - list students or their distinct groups")
	fmt.Fprintln(cli.out, "  grades [-student ID]                  - list grades, optionally for one student")
	fmt.Fprintln(cli.out, "  schedule [-student ID]                - list schedule entries")
	fmt.Fprintln(cli.out, "  assignments -teacher ID | -student ID - list assignments")
	fmt.Fprintln(cli.out, "  stats                                 - dashboard counters and top students")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "login":
		cmd := flag.NewFlagSet("login", flag.ExitOnError)
		uname := cmd.String("username", "", "The username. The password will be prompted next.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uname == "" {
			cmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.login(ctx, *uname, pwd)

	case "register":
		cmd := flag.NewFlagSet("register", flag.ExitOnError)
		name := cmd.String("name", "", "The display name.")
		uname := cmd.String("username", "", "The username. The password will be prompted next.")
		role := cmd.String("role", "student", "One of: student, teacher.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uname == "" || *name == "" {
			cmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.register(ctx, *name, *uname, *role, pwd)

	case "logout":
		if err := cli.client.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "logged out")
		return nil

	case "whoami":
		return cli.whoami()

	case "subjects":
		return cli.listSubjects(ctx)

	case "students":
		cmd := flag.NewFlagSet("students", flag.ExitOnError)
		groups := cmd.Bool("groups", false, "List distinct groups instead of students.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listStudents(ctx, *groups)

	case "grades":
		cmd := flag.NewFlagSet("grades", flag.ExitOnError)
		studentID := cmd.Int("student", 0, "Limit to one student and include their GPA.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listGrades(ctx, *studentID)

	case "schedule":
		cmd := flag.NewFlagSet("schedule", flag.ExitOnError)
		studentID := cmd.Int("student", 0, "Limit to one student's group.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listSchedule(ctx, *studentID)

	case "assignments":
		cmd := flag.NewFlagSet("assignments", flag.ExitOnError)
		teacherID := cmd.Int("teacher", 0, "List a teacher's assignments.")
		studentID := cmd.Int("student", 0, "List a student's assignments.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listAssignments(ctx, *teacherID, *studentID)

	case "stats":
		return cli.showStats(ctx)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errHelp
	}
	return string(pwd), nil
}

func (cli *commandLine) login(ctx context.Context, uname, pwd string) error {
	sess, err := cli.client.Login(ctx, uname, pwd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "welcome, %s (%s)\n", sess.Name, sess.Role)
	return nil
}

func (cli *commandLine) register(ctx context.Context, name, uname, role, pwd string) error {
	sess, err := cli.client.Register(ctx, session.NewAccount{
		Name:     name,
		Username: uname,
		Role:     role,
		Password: pwd,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "registered and logged in as %s (%s)\n", sess.Name, sess.Role)
	return nil
}

func (cli *commandLine) whoami() error {
	sess := cli.sess.Current()
	if sess == nil {
		return errNotLoggedIn
	}
	fmt.Fprintf(cli.out, "%s (%s), username %s, id %d\n", sess.Name, sess.Role, sess.Username, sess.ID)
	return nil
}

func (cli *commandLine) listSubjects(ctx context.Context) error {
	subjects, err := cli.client.Subjects(ctx)
	if err != nil {
		return err
	}
	for _, s := range subjects {
		fmt.Fprintf(cli.out, "%3d  %s\n", s.ID, s.Name)
	}
	return nil
}

func (cli *commandLine) listStudents(ctx context.Context, groupsOnly bool) error {
	if groupsOnly {
		groups, err := cli.client.StudentGroups(ctx)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Fprintln(cli.out, g)
		}
		return nil
	}
	students, err := cli.client.Students(ctx)
	if err != nil {
		return err
	}
	for _, s := range students {
		fmt.Fprintf(cli.out, "%3d  %-25s %s\n", s.ID, s.Name, s.Group)
	}
	return nil
}

func (cli *commandLine) listGrades(ctx context.Context, studentID int) error {
	if studentID > 0 {
		grades, err := cli.client.GradesByStudent(ctx, studentID)
		if err != nil {
			return err
		}
		for _, g := range grades {
			fmt.Fprintf(cli.out, "%3d  subject %d  %d\n", g.ID, g.SubjectID, g.Value)
		}
		gpa, err := cli.client.GPAByStudent(ctx, studentID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "GPA: %.2f\n", gpa.GPA)
		return nil
	}
	grades, err := cli.client.Grades(ctx)
	if err != nil {
		return err
	}
	for _, g := range grades {
		fmt.Fprintf(cli.out, "%3d  student %d  subject %d  %d\n", g.ID, g.StudentID, g.SubjectID, g.Value)
	}
	return nil
}

func (cli *commandLine) listSchedule(ctx context.Context, studentID int) error {
	if studentID > 0 {
		sched, err := cli.client.ScheduleByStudent(ctx, studentID)
		if err != nil {
			return err
		}
		for _, e := range sched {
			fmt.Fprintf(cli.out, "day %d  %s-%s  subject %d  %s\n", e.DayOfWeek, e.StartTime, e.EndTime, e.SubjectID, e.Room)
		}
		return nil
	}
	sched, err := cli.client.Schedule(ctx)
	if err != nil {
		return err
	}
	for _, e := range sched {
		fmt.Fprintf(cli.out, "day %d  %s-%s  subject %d  group %s\n", e.DayOfWeek, e.StartTime, e.EndTime, e.SubjectID, e.Group)
	}
	return nil
}

func (cli *commandLine) listAssignments(ctx context.Context, teacherID, studentID int) error {
	switch {
	case teacherID > 0:
		assignments, err := cli.client.AssignmentsByTeacher(ctx, teacherID)
		if err != nil {
			return err
		}
		for _, a := range assignments {
			fmt.Fprintf(cli.out, "%3d  %s (due %s)\n", a.ID, a.Title, a.DueDate)
		}
		return nil
	case studentID > 0:
		assignments, err := cli.client.AssignmentsByStudent(ctx, studentID)
		if err != nil {
			return err
		}
		for _, a := range assignments {
			fmt.Fprintf(cli.out, "%3d  %s (due %s)\n", a.ID, a.Title, a.DueDate)
		}
		return nil
	default:
		return errMissingListBy
	}
}

func (cli *commandLine) showStats(ctx context.Context) error {
	stats, err := cli.client.DashboardStats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "students: %d  subjects: %d  assignments: %d  average GPA: %.2f\n",
		stats.Students, stats.Subjects, stats.Assignments, stats.AverageGPA)

	top, err := cli.client.TopStudents(ctx, 5)
	if err != nil {
		return err
	}
	for i, rs := range top {
		fmt.Fprintf(cli.out, "%d. %-25s %.2f\n", i+1, rs.Student.Name, rs.GPA)
	}
	return nil
}
